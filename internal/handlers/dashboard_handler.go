package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"html/template"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"titanicdash/internal/charts"
	"titanicdash/internal/models"
	"titanicdash/internal/service"
	"titanicdash/internal/stats"
	"titanicdash/internal/table"
)

// DashboardHandler serves the dashboard page, the charts and the read-only API
type DashboardHandler struct {
	dashboard *service.DashboardService
	comments  *service.CommentService
	templates *template.Template
	msg       Messages
	logger    *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *service.DashboardService, comments *service.CommentService, templates *template.Template, msg Messages, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		comments:  comments,
		templates: templates,
		msg:       msg,
		logger:    logger,
	}
}

// Dashboard renders the stat cards, charts, comment panels and passenger table
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}

	commentsFailed := false
	if err := h.comments.EnsureLoaded(r.Context()); err != nil {
		commentsFailed = true
	}

	q := r.URL.Query()
	summary := h.dashboard.Stats()

	view := table.NewView(h.dashboard.Records())
	view.SetFilter(table.FilterFromQuery(q))
	if page, err := strconv.Atoi(q.Get(PageParam)); err == nil {
		view.GoTo(page)
	}

	editID := q.Get(EditParam)
	panels := make([]ChartPanel, 0, len(models.ChartTypes()))
	for _, t := range models.ChartTypes() {
		panels = append(panels, ChartPanel{
			Type:     t,
			Title:    h.msg.ChartTitle(t),
			ImageURL: "/charts/" + string(t),
			Comments: h.comments.Comments(t),
			EditID:   editID,
		})
	}

	data := DashboardViewData{
		PageData: PageData{Title: h.msg.Title, Msg: h.msg},
		Notice:   h.msg.Flash(q.Get(NoticeParam)),
		Error:    h.msg.Flash(q.Get(ErrorParam)),
		Cards: []StatCard{
			{Title: h.msg.TotalPassengers, Value: stats.FormatCount(summary.Total)},
			{Title: h.msg.Survivors, Value: stats.FormatCount(summary.Survivors)},
			{Title: h.msg.Deaths, Value: stats.FormatCount(summary.Deaths)},
			{Title: h.msg.SurvivalRate, Value: stats.FormatPercent(summary.SurvivalRate)},
		},
		Panels: panels,
		Table: TableViewData{
			Rows:       view.Rows(),
			Filter:     view.Filter(),
			Page:       view.Page(),
			TotalPages: view.TotalPages(),
			Matches:    view.Matches(),
			HasPrev:    view.HasPrev(),
			HasNext:    view.HasNext(),
			PrevURL:    "/?" + view.PageQuery(view.Page()-1) + "#passengers",
			NextURL:    "/?" + view.PageQuery(view.Page()+1) + "#passengers",
		},
		CommentsFailed: commentsFailed,
	}

	h.render(w, http.StatusOK, "dashboard.tmpl", data)
}

// ready writes the loading or failure page and reports false until the dataset is loaded
func (h *DashboardHandler) ready(w http.ResponseWriter) bool {
	state, err := h.dashboard.State()
	switch state {
	case service.StateReady:
		return true
	case service.StateFailed:
		data := StatusViewData{
			PageData: PageData{Title: h.msg.Title, Msg: h.msg},
			Message:  h.msg.LoadFailed,
		}
		if err != nil {
			data.Detail = err.Error()
		}
		h.render(w, http.StatusInternalServerError, "status.tmpl", data)
	default:
		w.Header().Set("Retry-After", "2")
		h.render(w, http.StatusServiceUnavailable, "status.tmpl", StatusViewData{
			PageData: PageData{Title: h.msg.Title, Msg: h.msg, Refresh: true},
			Message:  h.msg.Loading,
		})
	}
	return false
}

// Chart renders one chart as SVG
func (h *DashboardHandler) Chart(w http.ResponseWriter, r *http.Request) {
	chartType, err := models.ParseChartType(r.PathValue("type"))
	if err != nil {
		respondWithError(h.logger, w, http.StatusNotFound, ErrNotFound, "", nil)
		return
	}
	if state, _ := h.dashboard.State(); state != service.StateReady {
		respondWithError(h.logger, w, http.StatusServiceUnavailable, ErrServiceUnavailable, "", nil)
		return
	}

	summary := h.dashboard.Stats()
	labels := h.msg.SeriesLabels()

	var buf bytes.Buffer
	switch chartType {
	case models.ChartClassCount:
		err = charts.RenderBar(stats.ClassCountSeries(summary, labels), &buf)
	case models.ChartSurvived:
		err = charts.RenderPie(stats.SurvivorsBySexSeries(summary, labels), &buf)
	case models.ChartAge:
		err = charts.RenderBar(stats.AverageAgeSeries(summary, labels), &buf)
	}
	if errors.Is(err, charts.ErrNoData) {
		buf.Reset()
		buf.WriteString(placeholderSVG(h.msg.NoChartData))
	} else if err != nil {
		respondWithError(h.logger, w, http.StatusInternalServerError, ErrInternalServerError, "Error rendering chart", err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(buf.Bytes())
}

func placeholderSVG(text string) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+
		`<text x="50%%" y="50%%" text-anchor="middle" fill="#6B7280" font-family="sans-serif" font-size="16">%s</text></svg>`,
		charts.Width, charts.Height, html.EscapeString(text))
}

// Stats returns the summary statistics as JSON
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	switch state, err := h.dashboard.State(); state {
	case service.StateReady:
		writeJSON(w, http.StatusOK, h.dashboard.Stats())
	case service.StateFailed:
		respondWithError(h.logger, w, http.StatusInternalServerError, ErrInternalServerError, "Dataset unavailable", err)
	default:
		respondWithError(h.logger, w, http.StatusServiceUnavailable, ErrServiceUnavailable, "", nil)
	}
}

// Comments returns the comments grouped by chart type as JSON
func (h *DashboardHandler) Comments(w http.ResponseWriter, r *http.Request) {
	if err := h.comments.EnsureLoaded(r.Context()); err != nil {
		respondWithError(h.logger, w, http.StatusServiceUnavailable, ErrServiceUnavailable, "Comments unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, h.comments.Grouped())
}

// Summary returns the statistics as plain-text tables
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if state, _ := h.dashboard.State(); state != service.StateReady {
		respondWithError(h.logger, w, http.StatusServiceUnavailable, ErrServiceUnavailable, "", nil)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, stats.RenderReport(h.dashboard.Stats(), h.msg.SeriesLabels()))
}

// Healthz reports the dataset and comment store state
func (h *DashboardHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	state, _ := h.dashboard.State()
	commentsLoaded, _ := h.comments.Status()

	status := http.StatusOK
	if state == service.StateFailed {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status":   http.StatusText(status),
		"dataset":  state.String(),
		"comments": commentsLoaded,
	})
}

func (h *DashboardHandler) render(w http.ResponseWriter, status int, name string, data any) {
	renderTemplate(h.logger, h.templates, w, status, name, data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
