package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobportal/internal/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Manager owns the Postgres connection pool and wraps every call with
// context propagation and slow-query logging.
type Manager struct {
	db     *sql.DB
	logger *zap.Logger
	config *config.DatabaseConfig
}

// NewManager opens and verifies a pooled connection to Postgres.
func NewManager(cfg *config.DatabaseConfig, logger *zap.Logger) (*Manager, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connected",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
	)

	return &Manager{db: db, logger: logger, config: cfg}, nil
}

// Migrate applies pending schema migrations from the configured path.
// A separate connection is used so the migrator cannot close the pool.
func (m *Manager) Migrate(migrationsPath string) error {
	migrationDB, err := sql.Open("postgres", m.config.URL)
	if err != nil {
		return fmt.Errorf("failed to create migration connection: %w", err)
	}
	defer migrationDB.Close()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer migrator.Close()

	version, dirty, err := migrator.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in dirty state at version %d", version)
	}

	if err := migrator.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	newVersion, _, _ := migrator.Version()
	m.logger.Info("Migrations applied",
		zap.Uint("from_version", version),
		zap.Uint("to_version", newVersion),
	)
	return nil
}

// ExecContext executes a statement.
func (m *Manager) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := m.db.ExecContext(ctx, query, args...)
	m.observe("exec", query, start, err)
	return result, err
}

// QueryContext executes a query returning rows.
func (m *Manager) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := m.db.QueryContext(ctx, query, args...)
	m.observe("query", query, start, err)
	return rows, err
}

// QueryRowContext executes a single-row query.
func (m *Manager) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := m.db.QueryRowContext(ctx, query, args...)
	m.observe("query_row", query, start, nil)
	return row
}

// BeginTx starts a transaction.
func (m *Manager) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		m.logger.Error("Failed to begin transaction", zap.Error(err))
	}
	return tx, err
}

// Ping verifies the connection is alive.
func (m *Manager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

// Stats returns pool statistics.
func (m *Manager) Stats() sql.DBStats {
	return m.db.Stats()
}

// Close shuts the pool down.
func (m *Manager) Close() error {
	m.logger.Info("Closing database connection")
	return m.db.Close()
}

func (m *Manager) observe(kind, query string, start time.Time, err error) {
	duration := time.Since(start)
	if threshold := m.config.SlowQueryThreshold; threshold > 0 && duration > threshold {
		m.logger.Warn("Slow query detected",
			zap.String("type", kind),
			zap.Duration("duration", duration),
			zap.String("query", truncateQuery(query)),
		)
	}
	if err != nil {
		m.logger.Error("Query execution failed",
			zap.Error(err),
			zap.String("query", truncateQuery(query)),
		)
	}
}

func truncateQuery(query string) string {
	const maxLength = 200
	if len(query) <= maxLength {
		return query
	}
	return query[:maxLength] + "..."
}
