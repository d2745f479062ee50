package services

import (
	"context"
	"fmt"

	"jobportal/internal/models"
	"jobportal/internal/repositories"

	"go.uber.org/zap"
)

type notificationService struct {
	notifRepo repositories.NotificationRepository
	userRepo  repositories.UserRepository
	logger    *zap.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository, logger *zap.Logger) NotificationService {
	return &notificationService{notifRepo: notifRepo, userRepo: userRepo, logger: logger}
}

// List returns the caller's notifications newest-first.
func (s *notificationService) List(ctx context.Context, principal *models.Principal, unreadOnly bool) (*NotificationList, error) {
	user, err := s.resolveCaller(ctx, principal)
	if err != nil {
		return nil, err
	}

	notifications, err := s.notifRepo.ListByUser(ctx, user.ID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread := 0
	for _, n := range notifications {
		if !n.IsRead {
			unread++
		}
	}
	return &NotificationList{Notifications: notifications, UnreadCount: unread}, nil
}

// MarkRead marks a single notification as read. Notifications belong to
// their recipient only.
func (s *notificationService) MarkRead(ctx context.Context, principal *models.Principal, id int64) error {
	user, err := s.resolveCaller(ctx, principal)
	if err != nil {
		return err
	}

	n, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get notification: %w", err)
	}
	if n == nil || n.UserID != user.ID {
		return NewNotFoundError("notification not found")
	}
	if n.IsRead {
		return nil
	}

	if err := s.notifRepo.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread notification of the caller as read.
// Safe to call repeatedly.
func (s *notificationService) MarkAllRead(ctx context.Context, principal *models.Principal) error {
	user, err := s.resolveCaller(ctx, principal)
	if err != nil {
		return err
	}

	if err := s.notifRepo.MarkAllRead(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// Notify records an in-app notification for a user.
func (s *notificationService) Notify(ctx context.Context, userID int64, message string) error {
	n := &models.Notification{UserID: userID, Message: message}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.logger.Debug("Notification created",
		zap.Int64("notification_id", n.ID),
		zap.Int64("user_id", userID),
	)
	return nil
}

func (s *notificationService) resolveCaller(ctx context.Context, principal *models.Principal) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, principal.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if user == nil {
		return nil, NewUnauthorizedError("account no longer exists")
	}
	return user, nil
}
