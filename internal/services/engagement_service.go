package services

import (
	"context"
	"errors"
	"fmt"

	"jobportal/internal/models"
	"jobportal/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type engagementService struct {
	engRepo  repositories.EngagementRepository
	jobRepo  repositories.JobRepository
	logger   *zap.Logger
	validate *validator.Validate
}

// NewEngagementService creates a new engagement service.
func NewEngagementService(engRepo repositories.EngagementRepository, jobRepo repositories.JobRepository, logger *zap.Logger, validate *validator.Validate) EngagementService {
	return &engagementService{engRepo: engRepo, jobRepo: jobRepo, logger: logger, validate: validate}
}

// AddFavorite saves a job for the caller. At most one favorite per
// (user, job) pair; the job's favorite counter moves with the row.
func (s *engagementService) AddFavorite(ctx context.Context, principal *models.Principal, jobID int64) error {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return NewNotFoundError("job not found")
	}

	fav := &models.Favorite{Username: principal.Username, JobID: jobID}
	if err := s.engRepo.AddFavorite(ctx, fav); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return NewConflictError("job is already in your favorites", "ALREADY_FAVORITED")
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	if err := s.jobRepo.AddFavoriteCount(ctx, jobID, 1); err != nil {
		return fmt.Errorf("failed to bump favorite count: %w", err)
	}
	return nil
}

// RemoveFavorite drops the caller's favorite and decrements the
// counter.
func (s *engagementService) RemoveFavorite(ctx context.Context, principal *models.Principal, jobID int64) error {
	fav, err := s.engRepo.GetFavorite(ctx, principal.Username, jobID)
	if err != nil {
		return fmt.Errorf("failed to get favorite: %w", err)
	}
	if fav == nil {
		return NewNotFoundError("job is not in your favorites")
	}

	if err := s.engRepo.DeleteFavorite(ctx, fav.ID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	if err := s.jobRepo.AddFavoriteCount(ctx, jobID, -1); err != nil {
		return fmt.Errorf("failed to drop favorite count: %w", err)
	}
	return nil
}

// ListFavorites returns the jobs the caller has saved.
func (s *engagementService) ListFavorites(ctx context.Context, principal *models.Principal) ([]*models.Job, error) {
	jobs, err := s.engRepo.ListFavoriteJobs(ctx, principal.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return jobs, nil
}

// AddComment posts a comment on a job.
func (s *engagementService) AddComment(ctx context.Context, principal *models.Principal, req *AddCommentRequest) (*models.Comment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("comment content is required", err)
	}

	job, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, NewNotFoundError("job not found")
	}

	comment := &models.Comment{
		Username: principal.Username,
		JobID:    req.JobID,
		Content:  req.Content,
	}
	if err := s.engRepo.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return comment, nil
}

// ListComments returns a job's comments newest-first. Readable without
// authentication.
func (s *engagementService) ListComments(ctx context.Context, jobID int64) ([]*models.Comment, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, NewNotFoundError("job not found")
	}

	comments, err := s.engRepo.ListComments(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a comment. Allowed for its author and for any
// Employer account.
func (s *engagementService) DeleteComment(ctx context.Context, principal *models.Principal, commentID int64) error {
	comment, err := s.engRepo.GetComment(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to get comment: %w", err)
	}
	if comment == nil {
		return NewNotFoundError("comment not found")
	}

	if comment.Username != principal.Username && principal.Role != models.RoleEmployer && !isAdmin(principal) {
		return NewForbiddenError("you can only delete your own comments")
	}

	if err := s.engRepo.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.logger.Info("Comment deleted",
		zap.Int64("comment_id", commentID),
		zap.String("deleted_by", principal.Username),
	)
	return nil
}
