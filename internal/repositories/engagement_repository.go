package repositories

import (
	"context"
	"fmt"

	"jobportal/internal/database"
	"jobportal/internal/models"

	"go.uber.org/zap"
)

type engagementRepository struct {
	*BaseRepository
}

// NewEngagementRepository creates a new EngagementRepository.
func NewEngagementRepository(db *database.Manager, logger *zap.Logger) EngagementRepository {
	return &engagementRepository{BaseRepository: NewBaseRepository(db, logger)}
}

func (r *engagementRepository) AddFavorite(ctx context.Context, fav *models.Favorite) error {
	query := `INSERT INTO favorites (username, job_id) VALUES ($1, $2) RETURNING id`

	err := r.DB().QueryRowContext(ctx, query, fav.Username, fav.JobID).Scan(&fav.ID)
	if err != nil {
		if dupErr := translateUnique(err); dupErr == ErrDuplicate {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *engagementRepository) GetFavorite(ctx context.Context, username string, jobID int64) (*models.Favorite, error) {
	query := `SELECT id, username, job_id FROM favorites WHERE username = $1 AND job_id = $2`

	var f models.Favorite
	err := r.DB().QueryRowContext(ctx, query, username, jobID).Scan(&f.ID, &f.Username, &f.JobID)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}
	return &f, nil
}

func (r *engagementRepository) DeleteFavorite(ctx context.Context, id int64) error {
	result, err := r.DB().ExecContext(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("favorite %d not found", id)
	}
	return nil
}

func (r *engagementRepository) ListFavoriteJobs(ctx context.Context, username string) ([]*models.Job, error) {
	query := `
		SELECT j.id, j.title, j.description, j.company_name, j.location, j.posted_date,
			j.created_by_user_id, j.application_count, j.favorite_count, j.view_count, j.created_at
		FROM favorites f
		JOIN jobs j ON j.id = f.job_id
		WHERE f.username = $1
		ORDER BY f.id`

	rows, err := r.DB().QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		var j models.Job
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Description, &j.CompanyName, &j.Location, &j.PostedDate,
			&j.CreatedByUserID, &j.ApplicationCount, &j.FavoriteCount, &j.ViewCount, &j.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan favorite job: %w", err)
		}
		jobs = append(jobs, &j)
	}
	return jobs, rows.Err()
}

func (r *engagementRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (username, job_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.DB().QueryRowContext(ctx, query, comment.Username, comment.JobID, comment.Content).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return nil
}

func (r *engagementRepository) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	query := `SELECT id, username, job_id, content, created_at FROM comments WHERE id = $1`

	var c models.Comment
	err := r.DB().QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Username, &c.JobID, &c.Content, &c.CreatedAt)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &c, nil
}

func (r *engagementRepository) ListComments(ctx context.Context, jobID int64) ([]*models.Comment, error) {
	query := `
		SELECT id, username, job_id, content, created_at
		FROM comments
		WHERE job_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.DB().QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Username, &c.JobID, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

func (r *engagementRepository) DeleteComment(ctx context.Context, id int64) error {
	result, err := r.DB().ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("comment %d not found", id)
	}
	return nil
}
