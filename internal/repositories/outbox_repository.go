package repositories

import (
	"context"
	"fmt"

	"jobportal/internal/database"
	"jobportal/internal/models"

	"go.uber.org/zap"
)

type outboxRepository struct {
	*BaseRepository
}

// NewOutboxRepository creates a new OutboxRepository.
func NewOutboxRepository(db *database.Manager, logger *zap.Logger) OutboxRepository {
	return &outboxRepository{BaseRepository: NewBaseRepository(db, logger)}
}

func (r *outboxRepository) Enqueue(ctx context.Context, msg *models.EmailMessage) error {
	query := `
		INSERT INTO email_outbox (recipient, subject, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.DB().QueryRowContext(ctx, query, msg.Recipient, msg.Subject, msg.Body).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to enqueue email: %w", err)
	}
	return nil
}

func (r *outboxRepository) NextPending(ctx context.Context, limit int) ([]*models.EmailMessage, error) {
	query := `
		SELECT id, recipient, subject, body, attempts, sent_at, last_error, created_at
		FROM email_outbox
		WHERE sent_at IS NULL
		ORDER BY created_at, id
		LIMIT $1`

	rows, err := r.DB().QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending emails: %w", err)
	}
	defer rows.Close()

	var messages []*models.EmailMessage
	for rows.Next() {
		var m models.EmailMessage
		if err := rows.Scan(
			&m.ID, &m.Recipient, &m.Subject, &m.Body,
			&m.Attempts, &m.SentAt, &m.LastError, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan email: %w", err)
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

func (r *outboxRepository) MarkSent(ctx context.Context, id int64) error {
	result, err := r.DB().ExecContext(ctx,
		`UPDATE email_outbox SET sent_at = now(), attempts = attempts + 1, last_error = '' WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark email sent: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("email %d not found", id)
	}
	return nil
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id int64, deliveryErr string) error {
	result, err := r.DB().ExecContext(ctx,
		`UPDATE email_outbox SET attempts = attempts + 1, last_error = $2 WHERE id = $1`, id, deliveryErr)
	if err != nil {
		return fmt.Errorf("failed to record email failure: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("email %d not found", id)
	}

	r.Logger().Warn("Email delivery failed",
		zap.Int64("email_id", id),
		zap.String("error", deliveryErr),
	)
	return nil
}
