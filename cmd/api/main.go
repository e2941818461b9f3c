package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/renewals/backend/config"
	"github.com/pageza/renewals/backend/internal/api"
	"github.com/pageza/renewals/backend/internal/database"
	"github.com/pageza/renewals/backend/internal/logging"
	"github.com/pageza/renewals/backend/internal/middleware"
	"github.com/pageza/renewals/backend/internal/router"
	"github.com/pageza/renewals/backend/internal/server"
	"github.com/pageza/renewals/backend/internal/service"
	"github.com/pageza/renewals/backend/internal/workflow"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(config.GetEnvironment(), cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg, logging.Component(log, "database"))
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db, migrationsDir(), logging.Component(log, "migrations")); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Without Redis, login attempts are not throttled
	redisClient, err := database.NewRedisClient(cfg, logging.Component(log, "redis"))
	if err != nil {
		log.Warn("redis unavailable, login rate limiting disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	var archive service.AttachmentArchive
	if cfg.ArchiveEnabled() {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to configure attachment archive: %w", err)
		}
		archive = service.NewS3Archive(s3cfg)
		log.Info("attachment archive enabled", zap.String("bucket", cfg.S3BucketName))
	}

	svc := api.Services{
		Auth:           service.NewAuthService(db, cfg.JWTSecret),
		Users:          service.NewUserService(db),
		Customers:      service.NewCustomerService(db, archive, log),
		Subscriptions:  service.NewSubscriptionService(db),
		Notes:          service.NewNoteService(db),
		Feedback:       service.NewFeedbackService(db, workflow.NewFeedbackEngine(), log),
		LessonsLearned: service.NewLessonsLearnedService(db, workflow.NewLessonsLearnedEngine(), log),
		Dashboard:      service.NewDashboardService(db),
		Health: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
	}
	limiter := middleware.NewLoginRateLimiter(redisClient, cfg.LoginRateLimit, logging.Component(log, "rate_limit"))

	handler := router.SetupRouter(cfg, logging.Component(log, "http"), svc, limiter)
	srv := server.New(cfg.ServerHost, cfg.ServerPort, handler, log)
	err = srv.Run(ctx)
	closeDB(db, log)
	return err
}

func closeDB(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}
}

func migrationsDir() string {
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		return dir
	}
	return "migrations"
}
