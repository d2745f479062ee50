// Package router wires the HTTP surface.
package router

import (
	"net/http"

	"jobportal/internal/handlers/api/admin"
	"jobportal/internal/handlers/api/auth"
	"jobportal/internal/handlers/api/jobs"
	"jobportal/internal/handlers/api/notifications"
	"jobportal/internal/handlers/api/users"
	"jobportal/internal/middleware"
	"jobportal/internal/response"
	"jobportal/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Config carries transport-level knobs into the router.
type Config struct {
	MaxUploadSize int64
}

// New builds the full route table under /api.
func New(svcs *services.Collection, logger *zap.Logger, builder *response.Builder, cfg Config) http.Handler {
	authCtl := auth.NewAuthController(svcs, logger, builder)
	jobCtl := jobs.NewJobController(svcs, logger, builder, cfg.MaxUploadSize)
	userCtl := users.NewUserController(svcs, logger, builder)
	notifCtl := notifications.NewNotificationController(svcs, logger, builder)
	adminCtl := admin.NewAdminController(svcs, logger, builder)

	authenticate := middleware.Authenticate(svcs.Auth, builder)

	// guard authenticates and then checks the role table for op.
	guard := func(op string, h http.HandlerFunc) http.Handler {
		return authenticate(middleware.Require(op, builder)(h))
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Public surface.
	api.HandleFunc("/auth/register", authCtl.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authCtl.Login).Methods(http.MethodPost)
	api.HandleFunc("/jobs", jobCtl.List).Methods(http.MethodGet)
	api.HandleFunc("/jobs/search", jobCtl.Search).Methods(http.MethodGet)
	api.HandleFunc("/jobs/paginated", jobCtl.Paginated).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{id:[0-9]+}/comments", jobCtl.ListComments).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{id:[0-9]+}", jobCtl.Get).Methods(http.MethodGet)

	// Job catalog, owner-gated in the service.
	api.Handle("/jobs", guard(services.OpCreateJob, jobCtl.Create)).Methods(http.MethodPost)
	api.Handle("/jobs/{id:[0-9]+}", guard(services.OpUpdateJob, jobCtl.Update)).Methods(http.MethodPut)
	api.Handle("/jobs/{id:[0-9]+}", guard(services.OpDeleteJob, jobCtl.Delete)).Methods(http.MethodDelete)
	api.Handle("/jobs/statistics/{id:[0-9]+}", guard(services.OpJobStatistics, jobCtl.Statistics)).Methods(http.MethodGet)
	api.Handle("/jobs/employer/post", guard(services.OpEmployerListings, jobCtl.EmployerPosts)).Methods(http.MethodGet)

	// Application workflow.
	api.Handle("/jobs/{id:[0-9]+}/apply", guard(services.OpApply, jobCtl.Apply)).Methods(http.MethodPost)
	api.Handle("/jobs/{jobId:[0-9]+}/applications/{applicationId:[0-9]+}",
		guard(services.OpUpdateAppStatus, jobCtl.UpdateApplicationStatus)).Methods(http.MethodPut)
	api.Handle("/jobs/applications/{id:[0-9]+}/download-cv",
		guard(services.OpDownloadCVAdmin, jobCtl.DownloadCV)).Methods(http.MethodGet)
	api.Handle("/jobs/employer/applications/{id:[0-9]+}/download-cv",
		guard(services.OpDownloadCVOwner, jobCtl.DownloadCV)).Methods(http.MethodGet)
	api.Handle("/jobs/employer/applications", guard(services.OpEmployerListings, jobCtl.EmployerApplications)).Methods(http.MethodGet)

	// Engagement.
	api.Handle("/jobs/favorites", guard(services.OpFavorite, jobCtl.ListFavorites)).Methods(http.MethodGet)
	api.Handle("/jobs/{id:[0-9]+}/favorite", guard(services.OpFavorite, jobCtl.AddFavorite)).Methods(http.MethodPost)
	api.Handle("/jobs/{id:[0-9]+}/favorite", guard(services.OpFavorite, jobCtl.RemoveFavorite)).Methods(http.MethodDelete)
	api.Handle("/jobs/{id:[0-9]+}/comment", guard(services.OpComment, jobCtl.AddComment)).Methods(http.MethodPost)
	api.Handle("/jobs/comment/{id:[0-9]+}", guard(services.OpDeleteComment, jobCtl.DeleteComment)).Methods(http.MethodDelete)

	// Profile and notifications.
	api.Handle("/user/profile", guard(services.OpUserProfile, userCtl.Profile)).Methods(http.MethodGet)
	api.Handle("/user/profile", guard(services.OpUserProfile, userCtl.UpdateProfile)).Methods(http.MethodPut)
	api.Handle("/user/change-password", guard(services.OpUserProfile, userCtl.ChangePassword)).Methods(http.MethodPut)
	api.Handle("/user/applications", guard(services.OpUserProfile, userCtl.Applications)).Methods(http.MethodGet)
	api.Handle("/user/notifications", guard(services.OpNotifications, userCtl.Notifications)).Methods(http.MethodGet)
	api.Handle("/user/notifications/mark-as-read", guard(services.OpNotifications, userCtl.MarkNotificationsRead)).Methods(http.MethodPost)
	api.Handle("/notifications", guard(services.OpNotifications, notifCtl.List)).Methods(http.MethodGet)
	api.Handle("/notifications/{id:[0-9]+}/mark-as-read", guard(services.OpNotifications, notifCtl.MarkRead)).Methods(http.MethodPut)

	// Moderation.
	api.Handle("/admin/jobs", guard(services.OpAdmin, adminCtl.ListJobs)).Methods(http.MethodGet)
	api.Handle("/admin/jobs/{id:[0-9]+}", guard(services.OpAdmin, adminCtl.DeleteJob)).Methods(http.MethodDelete)
	api.Handle("/admin/users", guard(services.OpAdmin, adminCtl.ListUsers)).Methods(http.MethodGet)
	api.Handle("/admin/users/{id:[0-9]+}", guard(services.OpAdmin, adminCtl.DeleteUser)).Methods(http.MethodDelete)
	api.Handle("/admin/applications", guard(services.OpAdmin, adminCtl.ListApplications)).Methods(http.MethodGet)
	api.Handle("/admin/applications/{id:[0-9]+}", guard(services.OpAdmin, adminCtl.UpdateApplicationStatus)).Methods(http.MethodPut)
	api.Handle("/admin/applications/{id:[0-9]+}/download-cv", guard(services.OpAdmin, adminCtl.DownloadCV)).Methods(http.MethodGet)

	// Outermost first: request id, then logging, then panic recovery.
	var handler http.Handler = r
	handler = middleware.Recovery(logger, builder)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID()(handler)
	return handler
}
