package handlers

import (
	"net/http"
)

// Routes registers every dashboard route and wraps the mux with logging and panic recovery
func Routes(dashboard *DashboardHandler, comments *CommentHandler, mw *Middleware, staticPath string) http.Handler {
	mux := http.NewServeMux()

	// Static files, including the bundled dataset
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticPath))))

	mux.HandleFunc("GET /{$}", dashboard.Dashboard)
	mux.HandleFunc("GET /charts/{type}", dashboard.Chart)
	mux.HandleFunc("GET /summary.txt", dashboard.Summary)
	mux.HandleFunc("GET /healthz", dashboard.Healthz)

	mux.HandleFunc("GET /api/stats", dashboard.Stats)
	mux.HandleFunc("GET /api/comments", dashboard.Comments)

	mux.HandleFunc("POST /comments", mw.RateLimit(comments.Create))
	mux.HandleFunc("POST /comments/{id}/update", mw.RateLimit(comments.Update))
	mux.HandleFunc("GET /comments/{id}/delete", comments.ConfirmDelete)
	mux.HandleFunc("POST /comments/{id}/delete", mw.RateLimit(comments.Delete))

	return mw.Recover(mw.Logging(mux))
}
