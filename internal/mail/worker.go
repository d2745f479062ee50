package mail

import (
	"context"
	"time"

	"jobportal/internal/repositories"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Worker drains the email outbox in the background. Requests only
// enqueue rows; delivery happens here so SMTP latency and outages never
// block or fail an API call.
type Worker struct {
	outbox       repositories.OutboxRepository
	sender       Sender
	logger       *zap.Logger
	pollInterval time.Duration
	batchSize    int

	done chan struct{}
}

// NewWorker creates an outbox worker.
func NewWorker(outbox repositories.OutboxRepository, sender Sender, logger *zap.Logger, pollInterval time.Duration, batchSize int) *Worker {
	if pollInterval <= 0 {
		pollInterval = 15 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 20
	}
	return &Worker{
		outbox:       outbox,
		sender:       sender,
		logger:       logger,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		done:         make(chan struct{}),
	}
}

// Start runs the drain loop until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)

		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()

		w.logger.Info("Mail worker started",
			zap.Duration("poll_interval", w.pollInterval),
			zap.Int("batch_size", w.batchSize),
		)

		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Mail worker stopped")
				return
			case <-ticker.C:
				w.drain(ctx)
			}
		}
	}()
}

// Wait blocks until the drain loop has exited.
func (w *Worker) Wait() {
	<-w.done
}

func (w *Worker) drain(ctx context.Context) {
	pending, err := w.outbox.NextPending(ctx, w.batchSize)
	if err != nil {
		w.logger.Error("Failed to load pending emails", zap.Error(err))
		return
	}

	for _, msg := range pending {
		if ctx.Err() != nil {
			return
		}

		// Retry transient SMTP failures within this drain pass; a
		// message that keeps failing stays in the outbox for the next
		// pass.
		policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
		msg := msg
		err := backoff.Retry(func() error {
			return w.sender.Send(msg)
		}, policy)

		if err != nil {
			if markErr := w.outbox.MarkFailed(ctx, msg.ID, err.Error()); markErr != nil {
				w.logger.Error("Failed to record email failure", zap.Error(markErr))
			}
			continue
		}

		if err := w.outbox.MarkSent(ctx, msg.ID); err != nil {
			w.logger.Error("Failed to mark email sent",
				zap.Int64("email_id", msg.ID),
				zap.Error(err),
			)
			continue
		}

		w.logger.Info("Email delivered",
			zap.Int64("email_id", msg.ID),
			zap.String("recipient", msg.Recipient),
		)
	}
}
