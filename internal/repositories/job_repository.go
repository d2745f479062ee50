package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"jobportal/internal/database"
	"jobportal/internal/models"

	"go.uber.org/zap"
)

type jobRepository struct {
	*BaseRepository
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(db *database.Manager, logger *zap.Logger) JobRepository {
	return &jobRepository{BaseRepository: NewBaseRepository(db, logger)}
}

const jobColumns = `id, title, description, company_name, location, posted_date,
	created_by_user_id, application_count, favorite_count, view_count, created_at`

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (title, description, company_name, location, posted_date, created_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, posted_date, application_count, favorite_count, view_count, created_at`

	err := r.DB().QueryRowContext(
		ctx, query,
		job.Title, job.Description, job.CompanyName, job.Location, job.PostedDate, job.CreatedByUserID,
	).Scan(
		&job.ID, &job.PostedDate,
		&job.ApplicationCount, &job.FavoriteCount, &job.ViewCount, &job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	r.Logger().Info("Job created",
		zap.Int64("job_id", job.ID),
		zap.Int64("owner_id", job.CreatedByUserID),
		zap.String("title", job.Title),
	)
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return r.scanJob(r.DB().QueryRowContext(ctx, query, id))
}

func (r *jobRepository) GetAndIncrementView(ctx context.Context, id int64) (*models.Job, error) {
	query := `
		UPDATE jobs SET view_count = view_count + 1
		WHERE id = $1
		RETURNING ` + jobColumns
	return r.scanJob(r.DB().QueryRowContext(ctx, query, id))
}

func (r *jobRepository) Update(ctx context.Context, job *models.Job) error {
	query := `
		UPDATE jobs SET title = $2, description = $3, company_name = $4, location = $5, posted_date = $6
		WHERE id = $1`

	result, err := r.DB().ExecContext(
		ctx, query,
		job.ID, job.Title, job.Description, job.CompanyName, job.Location, job.PostedDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("job %d not found", job.ID)
	}
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id int64) error {
	return r.WithTransaction(ctx, func(tx *sql.Tx) error {
		// FKs cascade too, but dependent rows are removed explicitly so
		// the delete succeeds on schemas migrated without the cascades.
		for _, stmt := range []string{
			`DELETE FROM applications WHERE job_id = $1`,
			`DELETE FROM favorites WHERE job_id = $1`,
			`DELETE FROM comments WHERE job_id = $1`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("failed to delete job dependents: %w", err)
			}
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete job: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}

func (r *jobRepository) List(ctx context.Context) ([]*models.Job, error) {
	return r.queryJobs(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY id`)
}

func (r *jobRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Job, error) {
	return r.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE created_by_user_id = $1 ORDER BY id`, ownerID)
}

func (r *jobRepository) Search(ctx context.Context, filter *models.JobFilter) ([]*models.Job, error) {
	var clauses []string
	var args []interface{}

	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.Title != nil {
		add(`title ILIKE '%%' || $%d || '%%'`, *filter.Title)
	}
	if filter.CompanyName != nil {
		add(`company_name ILIKE '%%' || $%d || '%%'`, *filter.CompanyName)
	}
	if filter.Location != nil {
		add(`location ILIKE '%%' || $%d || '%%'`, *filter.Location)
	}
	if filter.MinApplicationCount != nil {
		add(`application_count >= $%d`, *filter.MinApplicationCount)
	}
	if filter.MaxApplicationCount != nil {
		add(`application_count <= $%d`, *filter.MaxApplicationCount)
	}
	if filter.MinFavoriteCount != nil {
		add(`favorite_count >= $%d`, *filter.MinFavoriteCount)
	}
	if filter.MaxFavoriteCount != nil {
		add(`favorite_count <= $%d`, *filter.MaxFavoriteCount)
	}
	if filter.MinViewCount != nil {
		add(`view_count >= $%d`, *filter.MinViewCount)
	}
	if filter.MaxViewCount != nil {
		add(`view_count <= $%d`, *filter.MaxViewCount)
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY id`

	return r.queryJobs(ctx, query, args...)
}

func (r *jobRepository) Paginate(ctx context.Context, pageNumber, pageSize int) ([]*models.Job, error) {
	// Stable total order by id; the source relied on unspecified default
	// ordering.
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY id LIMIT $1 OFFSET $2`
	return r.queryJobs(ctx, query, pageSize, (pageNumber-1)*pageSize)
}

func (r *jobRepository) IncrementApplicationCount(ctx context.Context, id int64) error {
	result, err := r.DB().ExecContext(ctx,
		`UPDATE jobs SET application_count = application_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment application count: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("job %d not found", id)
	}
	return nil
}

func (r *jobRepository) AddFavoriteCount(ctx context.Context, id int64, delta int) error {
	result, err := r.DB().ExecContext(ctx,
		`UPDATE jobs SET favorite_count = GREATEST(favorite_count + $2, 0) WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust favorite count: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("job %d not found", id)
	}
	return nil
}

func (r *jobRepository) queryJobs(ctx context.Context, query string, args ...interface{}) ([]*models.Job, error) {
	rows, err := r.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		var j models.Job
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Description, &j.CompanyName, &j.Location, &j.PostedDate,
			&j.CreatedByUserID, &j.ApplicationCount, &j.FavoriteCount, &j.ViewCount, &j.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, &j)
	}
	return jobs, rows.Err()
}

func (r *jobRepository) scanJob(row *sql.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(
		&j.ID, &j.Title, &j.Description, &j.CompanyName, &j.Location, &j.PostedDate,
		&j.CreatedByUserID, &j.ApplicationCount, &j.FavoriteCount, &j.ViewCount, &j.CreatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}
