package notifications

import (
	"fmt"
	"net/http"
	"strconv"

	"jobportal/internal/contextutils"
	"jobportal/internal/response"
	"jobportal/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type NotificationController struct {
	services *services.Collection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewNotificationController creates a new notification controller
func NewNotificationController(svcs *services.Collection, logger *zap.Logger, builder *response.Builder) *NotificationController {
	return &NotificationController{services: svcs, logger: logger, builder: builder}
}

// List handles GET /notifications
func (c *NotificationController) List(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"

	list, err := c.services.Notification.List(r.Context(), contextutils.GetPrincipal(r.Context()), unreadOnly)
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, list)
}

// MarkRead handles PUT /notifications/{id}/mark-as-read
func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		c.builder.WriteError(r.Context(), w, services.NewValidationError(fmt.Sprintf("invalid notification id %q", mux.Vars(r)["id"]), err))
		return
	}

	if err := c.services.Notification.MarkRead(r.Context(), contextutils.GetPrincipal(r.Context()), id); err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, map[string]int64{"id": id})
}
