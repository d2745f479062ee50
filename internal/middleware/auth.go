package middleware

import (
	"net/http"
	"strings"

	"jobportal/internal/contextutils"
	"jobportal/internal/response"
	"jobportal/internal/services"
)

// Authenticate verifies the bearer token and injects the Principal.
// Requests without a valid token are rejected before any handler runs.
func Authenticate(auth services.AuthService, builder *response.Builder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				builder.WriteError(r.Context(), w, services.NewUnauthorizedError("missing bearer token"))
				return
			}

			principal, err := auth.VerifyToken(token)
			if err != nil {
				builder.WriteError(r.Context(), w, err)
				return
			}

			ctx := contextutils.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Require gates a route on the role table for op. Must run after
// Authenticate.
func Require(op string, builder *response.Builder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := contextutils.GetPrincipal(r.Context())
			if principal == nil {
				builder.WriteError(r.Context(), w, services.NewUnauthorizedError("authentication required"))
				return
			}
			if !services.Allow(op, principal.Role) {
				builder.WriteError(r.Context(), w, services.NewForbiddenError("insufficient role for this operation"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
