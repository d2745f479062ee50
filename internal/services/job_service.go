package services

import (
	"context"
	"fmt"
	"time"

	"jobportal/internal/models"
	"jobportal/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type jobService struct {
	jobRepo  repositories.JobRepository
	userRepo repositories.UserRepository
	logger   *zap.Logger
	validate *validator.Validate
}

// NewJobService creates a new job service.
func NewJobService(jobRepo repositories.JobRepository, userRepo repositories.UserRepository, logger *zap.Logger, validate *validator.Validate) JobService {
	return &jobService{jobRepo: jobRepo, userRepo: userRepo, logger: logger, validate: validate}
}

// Create publishes a new job posting owned by the caller.
func (s *jobService) Create(ctx context.Context, principal *models.Principal, req *CreateJobRequest) (*models.Job, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("title, description, company name and location are required", err)
	}

	owner, err := s.resolveCaller(ctx, principal)
	if err != nil {
		return nil, err
	}

	job := &models.Job{
		Title:           req.Title,
		Description:     req.Description,
		CompanyName:     req.CompanyName,
		Location:        req.Location,
		PostedDate:      time.Now(),
		CreatedByUserID: owner.ID,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// Get returns a job by id. Each successful read counts as one view and
// the returned snapshot reflects it.
func (s *jobService) Get(ctx context.Context, id int64) (*models.Job, error) {
	if id <= 0 {
		return nil, NewValidationError("invalid job ID", nil)
	}

	job, err := s.jobRepo.GetAndIncrementView(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, NewNotFoundError("job not found")
	}
	return job, nil
}

// Update replaces a job posting. Counters and ownership are preserved.
func (s *jobService) Update(ctx context.Context, principal *models.Principal, req *UpdateJobRequest) (*models.Job, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("title, description, company name and location are required", err)
	}

	existing, err := s.jobRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if existing == nil {
		return nil, NewNotFoundError("job not found")
	}

	if err := s.requireOwnership(ctx, principal, existing, "update"); err != nil {
		return nil, err
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.CompanyName = req.CompanyName
	existing.Location = req.Location

	if err := s.jobRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return existing, nil
}

// Delete removes a job and everything hanging off it.
func (s *jobService) Delete(ctx context.Context, principal *models.Principal, id int64) error {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return NewNotFoundError("job not found")
	}

	if err := s.requireOwnership(ctx, principal, job, "delete"); err != nil {
		return err
	}

	if err := s.jobRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	s.logger.Info("Job deleted",
		zap.Int64("job_id", id),
		zap.String("deleted_by", principal.Username),
	)
	return nil
}

// List returns all jobs ordered by id.
func (s *jobService) List(ctx context.Context) ([]*models.Job, error) {
	jobs, err := s.jobRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// ListByOwner returns the jobs created by the caller.
func (s *jobService) ListByOwner(ctx context.Context, principal *models.Principal) ([]*models.Job, error) {
	owner, err := s.resolveCaller(ctx, principal)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobRepo.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// Search applies the given predicates conjunctively. An empty result is
// a NOT_FOUND, matching the catalog's lookup semantics.
func (s *jobService) Search(ctx context.Context, req *SearchJobsRequest) ([]*models.Job, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid search filters", err)
	}

	filter := &models.JobFilter{
		Title:               req.Title,
		CompanyName:         req.CompanyName,
		Location:            req.Location,
		MinApplicationCount: req.MinApplicationCount,
		MaxApplicationCount: req.MaxApplicationCount,
		MinFavoriteCount:    req.MinFavoriteCount,
		MaxFavoriteCount:    req.MaxFavoriteCount,
		MinViewCount:        req.MinViewCount,
		MaxViewCount:        req.MaxViewCount,
	}

	jobs, err := s.jobRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}
	if len(jobs) == 0 {
		return nil, NewNotFoundError("no jobs matched the search")
	}
	return jobs, nil
}

// Paginate returns one page of the catalog ordered by id.
func (s *jobService) Paginate(ctx context.Context, req *PaginateJobsRequest) ([]*models.Job, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("page number must be >= 1 and page size between 1 and 100", err)
	}

	jobs, err := s.jobRepo.Paginate(ctx, req.PageNumber, req.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to paginate jobs: %w", err)
	}
	return jobs, nil
}

// Statistics returns the counters snapshot for a job the caller owns.
func (s *jobService) Statistics(ctx context.Context, principal *models.Principal, id int64) (*models.JobStatistics, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, NewNotFoundError("job not found")
	}

	if err := s.requireOwnership(ctx, principal, job, "view statistics for"); err != nil {
		return nil, err
	}

	return &models.JobStatistics{
		JobID:            job.ID,
		JobTitle:         job.Title,
		ApplicationCount: job.ApplicationCount,
		FavoriteCount:    job.FavoriteCount,
		ViewCount:        job.ViewCount,
	}, nil
}

// resolveCaller maps the token identity to the stored account.
func (s *jobService) resolveCaller(ctx context.Context, principal *models.Principal) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, principal.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if user == nil {
		return nil, NewUnauthorizedError("account no longer exists")
	}
	return user, nil
}

func (s *jobService) requireOwnership(ctx context.Context, principal *models.Principal, job *models.Job, action string) error {
	if isAdmin(principal) {
		return nil
	}

	caller, err := s.resolveCaller(ctx, principal)
	if err != nil {
		return err
	}
	if !ownsJob(caller, job) {
		return NewForbiddenError(fmt.Sprintf("you can only %s your own jobs", action))
	}
	return nil
}
