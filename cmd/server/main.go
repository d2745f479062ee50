package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobportal/internal/config"
	"jobportal/internal/database"
	"jobportal/internal/mail"
	"jobportal/internal/repositories"
	"jobportal/internal/response"
	"jobportal/internal/router"
	"jobportal/internal/services"
	"jobportal/internal/storage"

	"go.uber.org/zap"
)

func main() {
	logger, err := initLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	logger.Info("Starting job portal")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	db, err := database.NewManager(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(cfg.Database.MigrationsPath); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	logger.Info("Database ready")

	store, err := storage.NewDiskStore(cfg.Uploads.Dir, logger)
	if err != nil {
		logger.Fatal("Failed to initialize blob store", zap.Error(err))
	}

	repos := repositories.NewCollection(db, logger)
	svcs := services.NewCollection(repos, store, cfg, logger)
	builder := response.NewBuilder(logger)

	// Mail delivery runs off the request path; cancelling the context
	// stops the worker.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	worker := mail.NewWorker(repos.Outbox, mail.NewSMTPSender(cfg.SMTP), logger, cfg.SMTP.PollInterval, cfg.SMTP.BatchSize)
	worker.Start(workerCtx)

	handler := router.New(svcs, logger, builder, router.Config{MaxUploadSize: cfg.Uploads.MaxFileSize})

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", zap.Error(err))
		}

		stopWorker()
		worker.Wait()
	}

	logger.Info("Server stopped")
}

// initLogger initializes the structured logger based on environment
func initLogger() (*zap.Logger, error) {
	var config zap.Config
	switch os.Getenv("GO_ENV") {
	case "production":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "staging":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	default:
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return config.Build()
}
