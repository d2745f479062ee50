package auth

import (
	"encoding/json"
	"net/http"

	"jobportal/internal/response"
	"jobportal/internal/services"

	"go.uber.org/zap"
)

type AuthController struct {
	services *services.Collection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewAuthController creates a new auth controller
func NewAuthController(svcs *services.Collection, logger *zap.Logger, builder *response.Builder) *AuthController {
	return &AuthController{services: svcs, logger: logger, builder: builder}
}

// Register handles account registration
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(r.Context(), w, services.NewValidationError("invalid request body", err))
		return
	}

	user, err := c.services.Auth.Register(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}

	c.builder.WriteCreated(r.Context(), w, user)
}

// Login handles credential verification and token issuance
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(r.Context(), w, services.NewValidationError("invalid request body", err))
		return
	}

	resp, err := c.services.Auth.Login(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}

	c.builder.WriteSuccess(r.Context(), w, resp)
}
