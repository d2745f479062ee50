package repositories

import (
	"context"
	"fmt"

	"jobportal/internal/database"
	"jobportal/internal/models"

	"go.uber.org/zap"
)

type notificationRepository struct {
	*BaseRepository
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *database.Manager, logger *zap.Logger) NotificationRepository {
	return &notificationRepository{BaseRepository: NewBaseRepository(db, logger)}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, message)
		VALUES ($1, $2)
		RETURNING id, is_read, created_at`

	err := r.DB().QueryRowContext(ctx, query, n.UserID, n.Message).
		Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	query := `SELECT id, user_id, message, is_read, created_at FROM notifications WHERE id = $1`

	var n models.Notification
	err := r.DB().QueryRowContext(ctx, query, id).
		Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &n, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]*models.Notification, error) {
	query := `SELECT id, user_id, message, is_read, created_at FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.DB().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, id int64) error {
	result, err := r.DB().ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("notification %d not found", id)
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	// Idempotent: marking an empty or already-read set is not an error.
	_, err := r.DB().ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
