package mw

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/MrSnakeDoc/golink/internal/logger"
)

// Log writes one line per request. Server errors log at error level,
// client errors at warn, probes at debug and everything else at info.
func Log(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				// handler wrote nothing
				status = http.StatusOK
			}

			fields := []zap.Field{
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Int("status", status),
				logger.Int("bytes", ww.BytesWritten()),
				logger.Duration("duration", time.Since(start)),
				logger.String("remote_ip", r.RemoteAddr),
				logger.String("request_id", middleware.GetReqID(r.Context())),
			}

			switch {
			case status >= http.StatusInternalServerError:
				log.Error("http_request", fields...)
			case status >= http.StatusBadRequest:
				log.Warn("http_request", fields...)
			case r.URL.Path == "/healthz" || r.URL.Path == "/readyz":
				log.Debug("http_request", fields...)
			default:
				log.Info("http_request", fields...)
			}
		})
	}
}
