package middleware

import (
	"net/http"
	"runtime/debug"

	"jobportal/internal/contextutils"
	"jobportal/internal/response"
	"jobportal/internal/services"

	"go.uber.org/zap"
)

// Recovery turns handler panics into 500 envelopes instead of dropped
// connections.
func Recovery(logger *zap.Logger, builder *response.Builder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("Panic recovered",
						zap.String("request_id", contextutils.GetRequestID(r.Context())),
						zap.Any("panic", rec),
						zap.ByteString("stack", debug.Stack()),
					)
					builder.WriteError(r.Context(), w, services.NewInternalError("internal server error"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
