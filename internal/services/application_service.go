package services

import (
	"context"
	"fmt"

	"jobportal/internal/models"
	"jobportal/internal/repositories"
	"jobportal/internal/storage"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type applicationService struct {
	appRepo       repositories.ApplicationRepository
	jobRepo       repositories.JobRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
	email         EmailService
	store         storage.BlobStore
	logger        *zap.Logger
	validate      *validator.Validate
}

// NewApplicationService creates a new application workflow service.
func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
	email EmailService,
	store storage.BlobStore,
	logger *zap.Logger,
	validate *validator.Validate,
) ApplicationService {
	return &applicationService{
		appRepo:       appRepo,
		jobRepo:       jobRepo,
		userRepo:      userRepo,
		notifications: notifications,
		email:         email,
		store:         store,
		logger:        logger,
		validate:      validate,
	}
}

// Apply submits an application for a job. The job's application counter
// is bumped before the application row is written, so a crash between
// the two can leave the counter ahead of the rows.
func (s *applicationService) Apply(ctx context.Context, principal *models.Principal, req *ApplyRequest) (*models.Application, error) {
	job, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, NewNotFoundError("job not found")
	}

	if err := s.jobRepo.IncrementApplicationCount(ctx, req.JobID); err != nil {
		return nil, fmt.Errorf("failed to count application: %w", err)
	}

	applicant, err := s.userRepo.GetByUsername(ctx, principal.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve applicant: %w", err)
	}
	if applicant == nil || applicant.Email == "" {
		return nil, NewValidationError("applicant email could not be resolved", nil)
	}

	app := &models.Application{
		JobID:             req.JobID,
		ApplicantUsername: applicant.Username,
		ApplicantEmail:    applicant.Email,
		Status:            models.StatusPending,
	}

	// An application without a CV is accepted as-is.
	if req.CV != nil && req.CV.Content != nil {
		key, err := s.store.Save(req.CV.FileName, req.CV.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store CV: %w", err)
		}
		app.CVFileName = req.CV.FileName
		app.CVFilePath = key
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	owner, err := s.userRepo.GetByID(ctx, job.CreatedByUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve job owner: %w", err)
	}
	if owner == nil || owner.Email == "" {
		return nil, NewValidationError("job owner email could not be resolved", nil)
	}

	// Mail and the owner notification ride on the committed state; a
	// failure here must not undo the application.
	s.enqueueMail(ctx, owner.Email,
		fmt.Sprintf("New application for %s", job.Title),
		fmt.Sprintf("%s applied for your job posting %q.", applicant.Username, job.Title))
	s.enqueueMail(ctx, applicant.Email,
		fmt.Sprintf("Application received for %s", job.Title),
		fmt.Sprintf("Your application for %q at %s was received and is pending review.", job.Title, job.CompanyName))

	if err := s.notifications.Notify(ctx, owner.ID,
		fmt.Sprintf("%s applied for your job %q.", applicant.Username, job.Title)); err != nil {
		s.logger.Error("Failed to notify job owner",
			zap.Int64("owner_id", owner.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("Application submitted",
		zap.Int64("application_id", app.ID),
		zap.Int64("job_id", job.ID),
		zap.String("applicant", applicant.Username),
	)
	return app, nil
}

// UpdateStatus transitions an application belonging to the given job.
func (s *applicationService) UpdateStatus(ctx context.Context, principal *models.Principal, req *UpdateApplicationStatusRequest) (*models.Application, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid status request", err)
	}

	job, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, NewNotFoundError("job not found")
	}

	app, err := s.appRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil || app.JobID != job.ID {
		return nil, NewNotFoundError("application not found for this job")
	}

	if !isAdmin(principal) {
		caller, err := s.userRepo.GetByUsername(ctx, principal.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user: %w", err)
		}
		if !ownsJob(caller, job) {
			return nil, NewForbiddenError("you can only manage applications for your own jobs")
		}
	}

	return s.transition(ctx, app, job, req.Status)
}

// UpdateStatusByID transitions an application looked up directly by id.
// Role gating (Admin) happens at the route.
func (s *applicationService) UpdateStatusByID(ctx context.Context, principal *models.Principal, applicationID int64, status string) (*models.Application, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil {
		return nil, NewNotFoundError("application not found")
	}

	job, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, NewNotFoundError("job not found")
	}

	return s.transition(ctx, app, job, status)
}

func (s *applicationService) transition(ctx context.Context, app *models.Application, job *models.Job, status string) (*models.Application, error) {
	if !models.ValidStatus(status) {
		return nil, NewValidationError(
			fmt.Sprintf("status must be one of %s, %s, %s", models.StatusPending, models.StatusAccepted, models.StatusRejected), nil)
	}

	if err := s.appRepo.UpdateStatus(ctx, app.ID, status); err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	app.Status = status

	applicant, err := s.userRepo.GetByUsername(ctx, app.ApplicantUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve applicant: %w", err)
	}
	if applicant == nil {
		return nil, NewNotFoundError("applicant account no longer exists")
	}

	if err := s.notifications.Notify(ctx, applicant.ID,
		fmt.Sprintf("Your application for %q is now %s.", job.Title, status)); err != nil {
		s.logger.Error("Failed to notify applicant",
			zap.Int64("applicant_id", applicant.ID),
			zap.Error(err),
		)
	}
	s.enqueueMail(ctx, app.ApplicantEmail,
		fmt.Sprintf("Application update for %s", job.Title),
		fmt.Sprintf("The status of your application for %q at %s changed to %s.", job.Title, job.CompanyName, status))

	s.logger.Info("Application status updated",
		zap.Int64("application_id", app.ID),
		zap.String("status", status),
	)
	return app, nil
}

// DownloadCV returns the stored CV. Admin may fetch any; an Employer
// only those attached to their own jobs.
func (s *applicationService) DownloadCV(ctx context.Context, principal *models.Principal, applicationID int64) (*CVDownload, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil {
		return nil, NewNotFoundError("application not found")
	}

	job, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, NewNotFoundError("job not found")
	}

	if !isAdmin(principal) {
		caller, err := s.userRepo.GetByUsername(ctx, principal.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user: %w", err)
		}
		if !ownsJob(caller, job) {
			return nil, NewForbiddenError("you can only download CVs for your own jobs")
		}
	}

	if app.CVFilePath == "" {
		return nil, NewNotFoundError("no CV attached to this application")
	}

	content, err := s.store.Open(app.CVFilePath)
	if err != nil {
		return nil, NewNotFoundError("CV file not found")
	}

	return &CVDownload{
		FileName:    app.CVFileName,
		ContentType: "application/octet-stream",
		Content:     content,
	}, nil
}

// ListForApplicant returns the caller's applications joined with job
// titles.
func (s *applicationService) ListForApplicant(ctx context.Context, principal *models.Principal) ([]*models.ApplicationSummary, error) {
	summaries, err := s.appRepo.ListByApplicant(ctx, principal.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return summaries, nil
}

// ListForEmployer returns every application against the caller's jobs.
func (s *applicationService) ListForEmployer(ctx context.Context, principal *models.Principal) ([]*models.Application, error) {
	caller, err := s.userRepo.GetByUsername(ctx, principal.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if caller == nil {
		return nil, NewUnauthorizedError("account no longer exists")
	}

	jobs, err := s.jobRepo.ListByOwner(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobIDs := make([]int64, len(jobs))
	for i, j := range jobs {
		jobIDs[i] = j.ID
	}

	apps, err := s.appRepo.ListByJobIDs(ctx, jobIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// ListAll returns every application; used by moderation.
func (s *applicationService) ListAll(ctx context.Context) ([]*models.Application, error) {
	apps, err := s.appRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (s *applicationService) enqueueMail(ctx context.Context, recipient, subject, body string) {
	if err := s.email.Enqueue(ctx, recipient, subject, body); err != nil {
		s.logger.Error("Failed to enqueue email",
			zap.String("recipient", recipient),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}
