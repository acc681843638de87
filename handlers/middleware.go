package handlers

import (
	"net/http"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
)

// GuardMiddleware redirects anonymous requests for protected views to the
// login view, keeping the requested location in the from parameter.
func (h *Handler) GuardMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := h.guard.Decide(r.URL.RequestURI(), h.currentIdentity())
		if !d.Render {
			h.log.Debug("guard: redirect to login", zap.String("from", d.From))
			http.Redirect(w, r, d.RedirectTo, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ErrorHandleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.log.Error("panic occurred",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
					zap.ByteString("stacktrace", debug.Stack()),
				)
				http.Error(w, "something went wrong", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.size += n
	return n, err
}

func (h *Handler) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("latency", time.Since(start)),
			zap.Int("body_size", rec.size),
		}
		if r.URL.RawQuery != "" {
			fields = append(fields, zap.String("query", r.URL.RawQuery))
		}
		switch {
		case rec.status >= 500:
			h.log.Error("HTTP Request", fields...)
		case rec.status >= 400:
			h.log.Warn("HTTP Request", fields...)
		default:
			h.log.Info("HTTP Request", fields...)
		}
	})
}
