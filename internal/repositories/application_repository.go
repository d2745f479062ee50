package repositories

import (
	"context"
	"fmt"
	"strings"

	"jobportal/internal/database"
	"jobportal/internal/models"

	"go.uber.org/zap"
)

type applicationRepository struct {
	*BaseRepository
}

// NewApplicationRepository creates a new ApplicationRepository.
func NewApplicationRepository(db *database.Manager, logger *zap.Logger) ApplicationRepository {
	return &applicationRepository{BaseRepository: NewBaseRepository(db, logger)}
}

const applicationColumns = `id, job_id, applicant_username, applicant_email, status,
	cv_file_name, cv_file_path, created_at`

func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	query := `
		INSERT INTO applications (job_id, applicant_username, applicant_email, status, cv_file_name, cv_file_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.DB().QueryRowContext(
		ctx, query,
		app.JobID, app.ApplicantUsername, app.ApplicantEmail, app.Status, app.CVFileName, app.CVFilePath,
	).Scan(&app.ID, &app.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	r.Logger().Info("Application created",
		zap.Int64("application_id", app.ID),
		zap.Int64("job_id", app.JobID),
		zap.String("applicant", app.ApplicantUsername),
	)
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	var a models.Application
	err := r.DB().QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.JobID, &a.ApplicantUsername, &a.ApplicantEmail, &a.Status,
		&a.CVFileName, &a.CVFilePath, &a.CreatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &a, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.DB().ExecContext(ctx,
		`UPDATE applications SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("application %d not found", id)
	}
	return nil
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, username string) ([]*models.ApplicationSummary, error) {
	query := `
		SELECT a.id, a.status, a.created_at, j.title, a.applicant_username, a.job_id
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.applicant_username = $1
		ORDER BY a.id`

	rows, err := r.DB().QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var summaries []*models.ApplicationSummary
	for rows.Next() {
		var s models.ApplicationSummary
		if err := rows.Scan(&s.ID, &s.Status, &s.CreatedAt, &s.JobTitle, &s.ApplicantUsername, &s.JobID); err != nil {
			return nil, fmt.Errorf("failed to scan application summary: %w", err)
		}
		summaries = append(summaries, &s)
	}
	return summaries, rows.Err()
}

func (r *applicationRepository) ListByJobIDs(ctx context.Context, jobIDs []int64) ([]*models.Application, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(jobIDs))
	args := make([]interface{}, len(jobIDs))
	for i, id := range jobIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id IN (` +
		strings.Join(placeholders, ", ") + `) ORDER BY id`
	return r.queryApplications(ctx, query, args...)
}

func (r *applicationRepository) List(ctx context.Context) ([]*models.Application, error) {
	return r.queryApplications(ctx, `SELECT `+applicationColumns+` FROM applications ORDER BY id`)
}

func (r *applicationRepository) queryApplications(ctx context.Context, query string, args ...interface{}) ([]*models.Application, error) {
	rows, err := r.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		var a models.Application
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.ApplicantUsername, &a.ApplicantEmail, &a.Status,
			&a.CVFileName, &a.CVFilePath, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, &a)
	}
	return apps, rows.Err()
}
