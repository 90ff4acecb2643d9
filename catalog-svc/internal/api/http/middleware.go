package httpapi

import (
	"net/http"
	"time"

	"restaurant-catalog/catalog-svc/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an id and logs it once it is served.
func RequestLogger(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, requestID)

			rec := metrics.NewStatusRecorder(w)
			next.ServeHTTP(rec, r)

			logger.Infow("request served",
				"method", r.Method,
				"route", metrics.RouteLabel(r),
				"path", r.URL.Path,
				"status", rec.Status,
				"duration", time.Since(start),
				"request_id", requestID,
			)
		})
	}
}
