package users

import (
	"encoding/json"
	"net/http"

	"jobportal/internal/contextutils"
	"jobportal/internal/response"
	"jobportal/internal/services"

	"go.uber.org/zap"
)

type UserController struct {
	services *services.Collection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewUserController creates a new user controller
func NewUserController(svcs *services.Collection, logger *zap.Logger, builder *response.Builder) *UserController {
	return &UserController{services: svcs, logger: logger, builder: builder}
}

// Profile handles GET /user/profile
func (c *UserController) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := c.services.User.GetProfile(r.Context(), contextutils.GetPrincipal(r.Context()))
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, user)
}

// UpdateProfile handles PUT /user/profile
func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(r.Context(), w, services.NewValidationError("invalid request body", err))
		return
	}

	user, err := c.services.User.UpdateProfile(r.Context(), contextutils.GetPrincipal(r.Context()), &req)
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, user)
}

// ChangePassword handles PUT /user/change-password
func (c *UserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req services.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(r.Context(), w, services.NewValidationError("invalid request body", err))
		return
	}

	if err := c.services.User.ChangePassword(r.Context(), contextutils.GetPrincipal(r.Context()), &req); err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, map[string]string{"message": "password changed"})
}

// Applications handles GET /user/applications
func (c *UserController) Applications(w http.ResponseWriter, r *http.Request) {
	apps, err := c.services.Application.ListForApplicant(r.Context(), contextutils.GetPrincipal(r.Context()))
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, apps)
}

// Notifications handles GET /user/notifications (unread only)
func (c *UserController) Notifications(w http.ResponseWriter, r *http.Request) {
	list, err := c.services.Notification.List(r.Context(), contextutils.GetPrincipal(r.Context()), true)
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, list)
}

// MarkNotificationsRead handles POST /user/notifications/mark-as-read
func (c *UserController) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := c.services.Notification.MarkAllRead(r.Context(), contextutils.GetPrincipal(r.Context())); err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, map[string]string{"message": "all notifications marked as read"})
}
