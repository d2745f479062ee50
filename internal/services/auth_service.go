package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobportal/internal/models"
	"jobportal/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo   repositories.UserRepository
	logger     *zap.Logger
	validate   *validator.Validate
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repositories.UserRepository, logger *zap.Logger, validate *validator.Validate, jwtSecret string, tokenTTL time.Duration, bcryptCost int) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &authService{
		userRepo:   userRepo,
		logger:     logger,
		validate:   validate,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new account. Only Employer and Employee may be
// chosen at registration.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid registration request", err)
	}
	if !models.RegistrableRole(req.Role) {
		return nil, NewValidationError(fmt.Sprintf("role must be %s or %s", models.RoleEmployer, models.RoleEmployee), nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Email:        req.Email,
		Role:         req.Role,
		Name:         req.Name,
		Surname:      req.Surname,
		Age:          req.Age,
		Residence:    req.Residence,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, NewConflictError("username already taken", "USERNAME_TAKEN")
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("User registered",
		zap.String("username", user.Username),
		zap.String("role", user.Role),
	)
	return user, nil
}

// Login verifies credentials and issues a bearer token.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("username and password are required", err)
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, NewUnauthorizedError("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login rejected", zap.String("username", req.Username))
		return nil, NewUnauthorizedError("invalid username or password")
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.Username,
		"role":  user.Role,
		"email": user.Email,
		"exp":   expiresAt.Unix(),
		"iat":   time.Now().Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		Username:  user.Username,
		Role:      user.Role,
	}, nil
}

// VerifyToken parses and verifies a bearer token, yielding the caller's
// identity.
func (s *authService) VerifyToken(tokenString string) (*models.Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, NewUnauthorizedError("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, NewUnauthorizedError("invalid token claims")
	}

	username, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)
	if username == "" || !models.ValidRole(role) {
		return nil, NewUnauthorizedError("invalid token claims")
	}

	return &models.Principal{Username: username, Role: role, Email: email}, nil
}
