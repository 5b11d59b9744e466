package handlers

import (
	"net/http"
	"time"

	"priceoffers/internal/logger"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestLogger пишет по строке на запрос через zap вместо middleware.Logger.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info("request",
					"request_id", middleware.GetReqID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start).String(),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
