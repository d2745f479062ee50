package admin

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"jobportal/internal/contextutils"
	"jobportal/internal/response"
	"jobportal/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// AdminController serves the moderation surface. Every route is gated
// on the Admin role at the router.
type AdminController struct {
	services *services.Collection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewAdminController creates a new admin controller
func NewAdminController(svcs *services.Collection, logger *zap.Logger, builder *response.Builder) *AdminController {
	return &AdminController{services: svcs, logger: logger, builder: builder}
}

// ListJobs handles GET /admin/jobs
func (c *AdminController) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := c.services.Job.List(r.Context())
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, jobs)
}

// DeleteJob handles DELETE /admin/jobs/{id}
func (c *AdminController) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := c.pathID(r, "id")
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}

	if err := c.services.Job.Delete(r.Context(), contextutils.GetPrincipal(r.Context()), id); err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteNoContent(w)
}

// ListUsers handles GET /admin/users
func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.services.User.ListAll(r.Context())
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, users)
}

// DeleteUser handles DELETE /admin/users/{id}
func (c *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := c.pathID(r, "id")
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}

	if err := c.services.User.DeleteUser(r.Context(), id); err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteNoContent(w)
}

// ListApplications handles GET /admin/applications
func (c *AdminController) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := c.services.Application.ListAll(r.Context())
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, apps)
}

// UpdateApplicationStatus handles PUT /admin/applications/{id}
func (c *AdminController) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := c.pathID(r, "id")
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.builder.WriteError(r.Context(), w, services.NewValidationError("invalid request body", err))
		return
	}

	app, err := c.services.Application.UpdateStatusByID(r.Context(), contextutils.GetPrincipal(r.Context()), id, body.Status)
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, app)
}

// DownloadCV handles GET /admin/applications/{id}/download-cv
func (c *AdminController) DownloadCV(w http.ResponseWriter, r *http.Request) {
	id, err := c.pathID(r, "id")
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}

	download, err := c.services.Application.DownloadCV(r.Context(), contextutils.GetPrincipal(r.Context()), id)
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	defer download.Content.Close()

	w.Header().Set("Content-Type", download.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.FileName))
	if _, err := io.Copy(w, download.Content); err != nil {
		c.logger.Error("Failed to stream CV", zap.Int64("application_id", id), zap.Error(err))
	}
}

func (c *AdminController) pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, services.NewValidationError(fmt.Sprintf("invalid %s", name), err)
	}
	return id, nil
}
