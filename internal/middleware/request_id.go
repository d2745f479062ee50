package middleware

import (
	"fmt"
	"net/http"
	"time"

	"jobportal/internal/contextutils"

	"github.com/gofrs/uuid"
)

// Request ID header constants
const (
	HeaderXRequestID = "X-Request-ID"
)

// RequestID generates and injects a correlation id for request tracing.
// An incoming X-Request-ID is honored so callers can trace across
// services.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(HeaderXRequestID)
			if requestID == "" {
				if id, err := uuid.NewV4(); err == nil {
					requestID = id.String()
				} else {
					requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
				}
			}

			w.Header().Set(HeaderXRequestID, requestID)
			ctx := contextutils.WithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
