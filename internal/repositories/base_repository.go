package repositories

import (
	"context"
	"database/sql"
	"errors"

	"jobportal/internal/database"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("duplicate row")

// BaseRepository provides the database handle and helpers shared by all
// repositories.
type BaseRepository struct {
	db     *database.Manager
	logger *zap.Logger
}

// NewBaseRepository creates a new base repository.
func NewBaseRepository(db *database.Manager, logger *zap.Logger) *BaseRepository {
	return &BaseRepository{db: db, logger: logger}
}

// DB returns the database manager.
func (r *BaseRepository) DB() *database.Manager { return r.db }

// Logger returns the repository logger.
func (r *BaseRepository) Logger() *zap.Logger { return r.logger }

// IsNotFound reports whether err is the no-rows sentinel.
func (r *BaseRepository) IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// translateUnique maps Postgres unique-violation errors to ErrDuplicate.
func translateUnique(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

// WithTransaction executes fn inside a transaction, rolling back on
// error or panic.
func (r *BaseRepository) WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Error("Failed to rollback transaction",
				zap.Error(rbErr),
				zap.NamedError("cause", err),
			)
		}
		return err
	}
	return tx.Commit()
}
