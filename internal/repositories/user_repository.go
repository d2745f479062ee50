package repositories

import (
	"context"
	"fmt"

	"jobportal/internal/database"
	"jobportal/internal/models"

	"go.uber.org/zap"
)

type userRepository struct {
	*BaseRepository
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *database.Manager, logger *zap.Logger) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository(db, logger)}
}

const userColumns = `id, username, password_hash, email, role, name, surname, age, residence, created_at`

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, email, role, name, surname, age, residence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.DB().QueryRowContext(
		ctx, query,
		user.Username, user.PasswordHash, user.Email, user.Role,
		user.Name, user.Surname, user.Age, user.Residence,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if err = translateUnique(err); err == ErrDuplicate {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.Logger().Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", user.Role),
	)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.DB().QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanUser(r.DB().QueryRowContext(ctx, query, username))
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET email = $2, role = $3, name = $4, surname = $5, age = $6, residence = $7
		WHERE id = $1`

	result, err := r.DB().ExecContext(
		ctx, query,
		user.ID, user.Email, user.Role, user.Name, user.Surname, user.Age, user.Residence,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("user %d not found", user.ID)
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := r.DB().ExecContext(ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("user %d not found", id)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.DB().QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Role,
			&u.Name, &u.Surname, &u.Age, &u.Residence, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB().ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("user %d not found", id)
	}
	return nil
}

func (r *userRepository) scanUser(row interface {
	Scan(dest ...interface{}) error
}) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Role,
		&u.Name, &u.Surname, &u.Age, &u.Residence, &u.CreatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}
