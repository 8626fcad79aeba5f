package middleware

import (
	"net/http"
	"time"

	"pet-adoption-marketplace/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// statusRecorder captura status y el error que apperr.Write haya registrado.
type statusRecorder struct {
	http.ResponseWriter
	status int
	err    error
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) RecordError(err error) { r.err = err }

// AccessLog loguea una línea por request. Los 5xx van a nivel error con la causa.
func AccessLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			fields := map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.status,
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  chimw.GetReqID(r.Context()),
			}
			if c, ok := GetClaims(r.Context()); ok {
				fields["user_id"] = c.UserID
			}

			switch {
			case rec.status >= 500:
				if rec.err != nil {
					fields["error"] = rec.err
				}
				log.Error("request failed", fields)
			case rec.status >= 400:
				log.Info("request rejected", fields)
			default:
				log.Debug("request served", fields)
			}
		})
	}
}
