package services

import (
	"io"
	"time"

	"jobportal/internal/models"
)

// ===============================
// AUTH TYPES
// ===============================

// RegisterRequest carries a new account registration.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=6,max=128"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"required"`
	Name      string `json:"name" validate:"max=100"`
	Surname   string `json:"surname" validate:"max=100"`
	Age       *int   `json:"age" validate:"omitempty,gte=16,lte=120"`
	Residence string `json:"residence" validate:"max=200"`
}

// LoginRequest carries credentials for token issuance.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}

// ===============================
// JOB TYPES
// ===============================

// CreateJobRequest carries a new job posting.
type CreateJobRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	CompanyName string `json:"company_name" validate:"required,max=200"`
	Location    string `json:"location" validate:"required,max=200"`
}

// UpdateJobRequest carries a full replacement of a job posting. ID must
// match the path id.
type UpdateJobRequest struct {
	ID          int64  `json:"id"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	CompanyName string `json:"company_name" validate:"required,max=200"`
	Location    string `json:"location" validate:"required,max=200"`
}

// SearchJobsRequest carries the conjunctive search predicates, all
// optional.
type SearchJobsRequest struct {
	Title               *string `json:"title"`
	CompanyName         *string `json:"company_name"`
	Location            *string `json:"location"`
	MinApplicationCount *int    `json:"min_application_count" validate:"omitempty,gte=0"`
	MaxApplicationCount *int    `json:"max_application_count" validate:"omitempty,gte=0"`
	MinFavoriteCount    *int    `json:"min_favorite_count" validate:"omitempty,gte=0"`
	MaxFavoriteCount    *int    `json:"max_favorite_count" validate:"omitempty,gte=0"`
	MinViewCount        *int    `json:"min_view_count" validate:"omitempty,gte=0"`
	MaxViewCount        *int    `json:"max_view_count" validate:"omitempty,gte=0"`
}

// PaginateJobsRequest carries offset pagination parameters.
type PaginateJobsRequest struct {
	PageNumber int `json:"page_number" validate:"gte=1"`
	PageSize   int `json:"page_size" validate:"gte=1,lte=100"`
}

// ===============================
// APPLICATION TYPES
// ===============================

// CVUpload is an optional CV attachment accompanying an application.
type CVUpload struct {
	FileName string
	Content  io.Reader
}

// ApplyRequest carries one apply call.
type ApplyRequest struct {
	JobID int64
	CV    *CVUpload
}

// UpdateApplicationStatusRequest carries a status transition.
type UpdateApplicationStatusRequest struct {
	JobID         int64
	ApplicationID int64
	Status        string `json:"status" validate:"required"`
}

// CVDownload is the payload returned for a CV download.
type CVDownload struct {
	FileName    string
	ContentType string
	Content     io.ReadCloser
}

// ===============================
// ENGAGEMENT TYPES
// ===============================

// AddCommentRequest carries a new comment on a job.
type AddCommentRequest struct {
	JobID   int64
	Content string `json:"content" validate:"required,max=2000"`
}

// ===============================
// USER TYPES
// ===============================

// UpdateProfileRequest carries a profile update. Role stays within the
// known enum.
type UpdateProfileRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"required"`
	Name      string `json:"name" validate:"max=100"`
	Surname   string `json:"surname" validate:"max=100"`
	Age       *int   `json:"age" validate:"omitempty,gte=16,lte=120"`
	Residence string `json:"residence" validate:"max=200"`
}

// ChangePasswordRequest carries a password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=128"`
}

// ===============================
// NOTIFICATION TYPES
// ===============================

// NotificationList wraps notifications with an unread count.
type NotificationList struct {
	Notifications []*models.Notification `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}
