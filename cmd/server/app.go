package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/prisma-study/srs-api/internal/config"
	"github.com/prisma-study/srs-api/internal/platform/postgres"
	"github.com/prisma-study/srs-api/internal/service"
	"github.com/prisma-study/srs-api/internal/service/auth"
	"github.com/prisma-study/srs-api/internal/service/study"
)

// application holds the wired dependency graph of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService      auth.JWTService
	userService     service.UserService
	questionService service.QuestionService
	statsService    service.StatsService
	studyService    study.StudyService
}

// newApplication connects to the database, applies migrations and wires
// stores, services and the reserved admin account.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, logger); err != nil {
		closeDatabase(db, logger)
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		closeDatabase(db, logger)
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewUserStore(db, logger)
	questionStore := postgres.NewQuestionStore(db, logger)
	reviewStore := postgres.NewReviewStore(db, logger)
	statsStore := postgres.NewStatsStore(db, logger)

	bcryptVerifier := auth.NewBcryptVerifier()

	userService := service.NewUserService(userStore, db, bcryptVerifier, bcryptVerifier, logger)
	questionService := service.NewQuestionService(questionStore, db, logger)
	statsService := service.NewStatsService(statsStore, logger)
	studyService := study.NewStudyService(db, questionStore, reviewStore, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := userService.EnsureAdmin(ctx, cfg.Auth.AdminPassword); err != nil {
		closeDatabase(db, logger)
		return nil, fmt.Errorf("failed to ensure admin account: %w", err)
	}

	return &application{
		config:          cfg,
		logger:          logger,
		db:              db,
		jwtService:      jwtService,
		userService:     userService,
		questionService: questionService,
		statsService:    statsService,
		studyService:    studyService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		closeDatabase(app.db, app.logger)
		app.db = nil
	}
}

func closeDatabase(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("failed to close database connection", "error", err)
	}
}
