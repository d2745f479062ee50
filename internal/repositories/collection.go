package repositories

import (
	"jobportal/internal/database"

	"go.uber.org/zap"
)

// Collection bundles all repositories for injection into the service
// layer.
type Collection struct {
	User         UserRepository
	Job          JobRepository
	Application  ApplicationRepository
	Engagement   EngagementRepository
	Notification NotificationRepository
	Outbox       OutboxRepository
}

// NewCollection constructs every repository over the shared database
// manager.
func NewCollection(db *database.Manager, logger *zap.Logger) *Collection {
	return &Collection{
		User:         NewUserRepository(db, logger),
		Job:          NewJobRepository(db, logger),
		Application:  NewApplicationRepository(db, logger),
		Engagement:   NewEngagementRepository(db, logger),
		Notification: NewNotificationRepository(db, logger),
		Outbox:       NewOutboxRepository(db, logger),
	}
}
