package services

import (
	"context"

	"jobportal/internal/models"
)

// AuthService issues and verifies bearer tokens.
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	// VerifyToken is a pure function of the token and the configured
	// secret; it never touches storage.
	VerifyToken(token string) (*models.Principal, error)
}

// JobService manages the job catalog.
type JobService interface {
	Create(ctx context.Context, principal *models.Principal, req *CreateJobRequest) (*models.Job, error)
	// Get returns the job and counts the read as one view.
	Get(ctx context.Context, id int64) (*models.Job, error)
	Update(ctx context.Context, principal *models.Principal, req *UpdateJobRequest) (*models.Job, error)
	Delete(ctx context.Context, principal *models.Principal, id int64) error
	List(ctx context.Context) ([]*models.Job, error)
	ListByOwner(ctx context.Context, principal *models.Principal) ([]*models.Job, error)
	Search(ctx context.Context, req *SearchJobsRequest) ([]*models.Job, error)
	Paginate(ctx context.Context, req *PaginateJobsRequest) ([]*models.Job, error)
	Statistics(ctx context.Context, principal *models.Principal, id int64) (*models.JobStatistics, error)
}

// ApplicationService runs the application workflow.
type ApplicationService interface {
	Apply(ctx context.Context, principal *models.Principal, req *ApplyRequest) (*models.Application, error)
	UpdateStatus(ctx context.Context, principal *models.Principal, req *UpdateApplicationStatusRequest) (*models.Application, error)
	DownloadCV(ctx context.Context, principal *models.Principal, applicationID int64) (*CVDownload, error)
	ListForApplicant(ctx context.Context, principal *models.Principal) ([]*models.ApplicationSummary, error)
	ListForEmployer(ctx context.Context, principal *models.Principal) ([]*models.Application, error)
	ListAll(ctx context.Context) ([]*models.Application, error)
	// UpdateStatusByID transitions an application without a job id from
	// the path; used by moderation.
	UpdateStatusByID(ctx context.Context, principal *models.Principal, applicationID int64, status string) (*models.Application, error)
}

// EngagementService manages favorites and comments.
type EngagementService interface {
	AddFavorite(ctx context.Context, principal *models.Principal, jobID int64) error
	RemoveFavorite(ctx context.Context, principal *models.Principal, jobID int64) error
	ListFavorites(ctx context.Context, principal *models.Principal) ([]*models.Job, error)
	AddComment(ctx context.Context, principal *models.Principal, req *AddCommentRequest) (*models.Comment, error)
	ListComments(ctx context.Context, jobID int64) ([]*models.Comment, error)
	DeleteComment(ctx context.Context, principal *models.Principal, commentID int64) error
}

// NotificationService serves in-app notifications.
type NotificationService interface {
	List(ctx context.Context, principal *models.Principal, unreadOnly bool) (*NotificationList, error)
	MarkRead(ctx context.Context, principal *models.Principal, id int64) error
	MarkAllRead(ctx context.Context, principal *models.Principal) error
	// Notify creates a notification for a user; used by workflow events
	// only.
	Notify(ctx context.Context, userID int64, message string) error
}

// UserService manages profiles and accounts.
type UserService interface {
	GetProfile(ctx context.Context, principal *models.Principal) (*models.User, error)
	UpdateProfile(ctx context.Context, principal *models.Principal, req *UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, principal *models.Principal, req *ChangePasswordRequest) error
	ListAll(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// EmailService enqueues outbound mail for background delivery.
type EmailService interface {
	Enqueue(ctx context.Context, recipient, subject, body string) error
}
