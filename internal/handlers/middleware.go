package handlers

import (
	"net/http"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"titanicdash/internal/security"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	logger     *zap.Logger
	limiter    *security.RateLimiter
	trustProxy bool
}

// NewMiddleware creates a new middleware instance. A nil limiter disables rate limiting.
// trustProxy makes the limiter key on forwarding headers instead of the peer address.
func NewMiddleware(logger *zap.Logger, limiter *security.RateLimiter, trustProxy bool) *Middleware {
	return &Middleware{
		logger:     logger,
		limiter:    limiter,
		trustProxy: trustProxy,
	}
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// Logging middleware logs HTTP requests
func (m *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		m.logger.Info("Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)))
	})
}

// Recover turns a handler panic into a 500 response
func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				m.logger.Error("Handler panic",
					zap.Any("panic", p),
					zap.String("path", r.URL.Path),
					zap.ByteString("stack", debug.Stack()))
				http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// RateLimit rejects requests from clients over the configured write rate
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.limiter != nil {
			ip := security.GetClientIP(r, m.trustProxy)
			if !m.limiter.Allow(ip) {
				m.logger.Warn("Rate limit exceeded", zap.String("ip", ip), zap.String("path", r.URL.Path))
				w.Header().Set("Retry-After", "60")
				http.Error(w, ErrTooManyRequests, http.StatusTooManyRequests)
				return
			}
		}
		next(w, r)
	}
}
