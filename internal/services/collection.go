package services

import (
	"jobportal/internal/config"
	"jobportal/internal/repositories"
	"jobportal/internal/storage"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Collection bundles all services for injection into the transport
// layer.
type Collection struct {
	Auth         AuthService
	Job          JobService
	Application  ApplicationService
	Engagement   EngagementService
	Notification NotificationService
	User         UserService
	Email        EmailService
}

// NewCollection wires every service over the repositories and blob
// store.
func NewCollection(repos *repositories.Collection, store storage.BlobStore, cfg *config.Config, logger *zap.Logger) *Collection {
	validate := validator.New()

	email := NewEmailService(repos.Outbox, logger)
	notifications := NewNotificationService(repos.Notification, repos.User, logger)

	return &Collection{
		Auth:         NewAuthService(repos.User, logger, validate, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.BCryptCost),
		Job:          NewJobService(repos.Job, repos.User, logger, validate),
		Application:  NewApplicationService(repos.Application, repos.Job, repos.User, notifications, email, store, logger, validate),
		Engagement:   NewEngagementService(repos.Engagement, repos.Job, logger, validate),
		Notification: notifications,
		User:         NewUserService(repos.User, logger, validate, cfg.Auth.BCryptCost),
		Email:        email,
	}
}
