package repositories

import (
	"context"

	"jobportal/internal/models"
)

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	List(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// JobRepository persists job postings. Counter mutations are expressed
// as single-statement atomic increments so concurrent callers cannot
// lose updates.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	// GetAndIncrementView increments view_count by one and returns the
	// job reflecting the increment. Returns nil when the job is absent.
	GetAndIncrementView(ctx context.Context, id int64) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	// Delete removes the job and its dependent applications, favorites
	// and comments in one transaction.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Job, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Job, error)
	Search(ctx context.Context, filter *models.JobFilter) ([]*models.Job, error)
	Paginate(ctx context.Context, pageNumber, pageSize int) ([]*models.Job, error)
	IncrementApplicationCount(ctx context.Context, id int64) error
	AddFavoriteCount(ctx context.Context, id int64, delta int) error
}

// ApplicationRepository persists job applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	ListByApplicant(ctx context.Context, username string) ([]*models.ApplicationSummary, error)
	ListByJobIDs(ctx context.Context, jobIDs []int64) ([]*models.Application, error)
	List(ctx context.Context) ([]*models.Application, error)
}

// EngagementRepository persists favorites and comments.
type EngagementRepository interface {
	// AddFavorite inserts a favorite row. A duplicate (username, job)
	// pair fails with ErrDuplicate.
	AddFavorite(ctx context.Context, fav *models.Favorite) error
	GetFavorite(ctx context.Context, username string, jobID int64) (*models.Favorite, error)
	DeleteFavorite(ctx context.Context, id int64) error
	ListFavoriteJobs(ctx context.Context, username string) ([]*models.Job, error)

	AddComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id int64) (*models.Comment, error)
	ListComments(ctx context.Context, jobID int64) ([]*models.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}

// NotificationRepository persists in-app notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

// OutboxRepository persists outbound mail awaiting delivery.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg *models.EmailMessage) error
	NextPending(ctx context.Context, limit int) ([]*models.EmailMessage, error)
	MarkSent(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, deliveryErr string) error
}
