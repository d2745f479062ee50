package services

import (
	"context"
	"fmt"

	"jobportal/internal/models"
	"jobportal/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	userRepo   repositories.UserRepository
	logger     *zap.Logger
	validate   *validator.Validate
	bcryptCost int
}

// NewUserService creates a new user service.
func NewUserService(userRepo repositories.UserRepository, logger *zap.Logger, validate *validator.Validate, bcryptCost int) UserService {
	return &userService{userRepo: userRepo, logger: logger, validate: validate, bcryptCost: bcryptCost}
}

// GetProfile returns the caller's account.
func (s *userService) GetProfile(ctx context.Context, principal *models.Principal) (*models.User, error) {
	return s.resolveCaller(ctx, principal)
}

// UpdateProfile updates the caller's account. Role must stay in the
// known enum; username is immutable.
func (s *userService) UpdateProfile(ctx context.Context, principal *models.Principal, req *UpdateProfileRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid profile update", err)
	}
	if !models.ValidRole(req.Role) {
		return nil, NewValidationError("unknown role", nil)
	}

	user, err := s.resolveCaller(ctx, principal)
	if err != nil {
		return nil, err
	}

	user.Email = req.Email
	user.Role = req.Role
	user.Name = req.Name
	user.Surname = req.Surname
	user.Age = req.Age
	user.Residence = req.Residence

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("Profile updated", zap.String("username", user.Username))
	return user, nil
}

// ChangePassword replaces the caller's password after verifying the old
// one.
func (s *userService) ChangePassword(ctx context.Context, principal *models.Principal, req *ChangePasswordRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return NewValidationError("old and new password are required", err)
	}

	user, err := s.resolveCaller(ctx, principal)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return NewValidationError("old password does not match", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	s.logger.Info("Password changed", zap.String("username", user.Username))
	return nil
}

// ListAll returns every account; used by moderation.
func (s *userService) ListAll(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes an account by id.
func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return NewNotFoundError("user not found")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User deleted",
		zap.Int64("user_id", id),
		zap.String("username", user.Username),
	)
	return nil
}

func (s *userService) resolveCaller(ctx context.Context, principal *models.Principal) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, principal.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if user == nil {
		return nil, NewUnauthorizedError("account no longer exists")
	}
	return user, nil
}
