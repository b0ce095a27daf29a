package middleware

import (
	"net/http"
	"time"
)

// Logging пишет строку журнала на каждый запрос
func Logging(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			elapsed := time.Since(started)
			requestID := GetRequestID(r.Context())
			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("%s %s - %d in %s, request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, requestID)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("%s %s - %d in %s, request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, requestID)
			default:
				logger.Info("%s %s - %d in %s, request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, requestID)
			}
		})
	}
}
