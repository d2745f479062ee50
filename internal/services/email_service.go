package services

import (
	"context"
	"fmt"

	"jobportal/internal/models"
	"jobportal/internal/repositories"

	"go.uber.org/zap"
)

type emailService struct {
	outbox repositories.OutboxRepository
	logger *zap.Logger
}

// NewEmailService creates an email service backed by the durable
// outbox. Requests only write rows; the mail worker delivers them.
func NewEmailService(outbox repositories.OutboxRepository, logger *zap.Logger) EmailService {
	return &emailService{outbox: outbox, logger: logger}
}

func (s *emailService) Enqueue(ctx context.Context, recipient, subject, body string) error {
	if recipient == "" {
		return NewValidationError("email recipient is required", nil)
	}

	msg := &models.EmailMessage{
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
	}
	if err := s.outbox.Enqueue(ctx, msg); err != nil {
		return fmt.Errorf("failed to enqueue email: %w", err)
	}

	s.logger.Debug("Email enqueued",
		zap.Int64("email_id", msg.ID),
		zap.String("recipient", recipient),
	)
	return nil
}
