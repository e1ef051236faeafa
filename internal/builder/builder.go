package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/solacetech/solace-backend/internal/api"
	plansapi "github.com/solacetech/solace-backend/internal/api/plans"
	sessionapi "github.com/solacetech/solace-backend/internal/api/session"
	supportapi "github.com/solacetech/solace-backend/internal/api/support"
	"github.com/solacetech/solace-backend/internal/artifacts"
	"github.com/solacetech/solace-backend/internal/config"
	"github.com/solacetech/solace-backend/internal/features"
	"github.com/solacetech/solace-backend/internal/integration/embedding"
	"github.com/solacetech/solace-backend/internal/integration/llm"
	"github.com/solacetech/solace-backend/internal/pkg/activity"
	"github.com/solacetech/solace-backend/internal/pkg/formatter"
	"github.com/solacetech/solace-backend/internal/pkg/mailer"
	"github.com/solacetech/solace-backend/internal/pkg/validator"
	"github.com/solacetech/solace-backend/internal/predictor"
	"github.com/solacetech/solace-backend/internal/questionnaire"
	"github.com/solacetech/solace-backend/internal/repository"
	"github.com/solacetech/solace-backend/internal/telegram"
	telegrambot "github.com/solacetech/solace-backend/internal/telegram/bot"
	"github.com/solacetech/solace-backend/internal/usecase/session"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	sessionUC, err := buildSessionUsecase(cfg, db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Setup API handlers
	v := validator.New()
	sessionHandler := sessionapi.NewHandler(sessionUC, v)
	plansHandler := plansapi.NewHandler(sessionUC, v)
	supportHandler := supportapi.NewHandler(sessionUC, v)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(sessionHandler, plansHandler, supportHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server. Write timeout must cover a full LLM round trip.
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 125 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (*telegrambot.Bot, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	sessionUC, err := buildSessionUsecase(cfg, db, logger)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	// Initialize Telegram bot
	bot, err := telegram.NewBot(cfg.TelegramCfg, cfg.SessionTTL, cfg.SessionCleanupInterval, sessionUC, logger)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

// buildSessionUsecase assembles the full estimation pipeline shared by the
// HTTP server and the Telegram bot: stores, model artifacts, connectors and
// the use case on top of them.
func buildSessionUsecase(cfg *config.Config, db *pgxpool.Pool, logger *zap.Logger) (*session.SessionUsecase, error) {
	// Initialize stores
	sessionStore := repository.NewSessionCache(cfg.SessionTTL, cfg.SessionCleanupInterval)
	planRepo := repository.NewPlanPostgres(db)
	logger.Info("Stores initialized")

	// Load pre-fitted model artifacts
	bundle, err := artifacts.Load(cfg.ArtifactsDir)
	if err != nil {
		return nil, fmt.Errorf("load model artifacts: %w", err)
	}
	logger.Info("Model artifacts loaded", zap.String("dir", cfg.ArtifactsDir))

	// Initialize external service connectors (with mock support)
	var llmConnector session.LLMConnector
	var embedder features.Embedder

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		llmConnector = llm.NewMockConnector(logger)
		embedder = embedding.NewMockConnector(cfg.EmbeddingConnectorCfg.Dimension, logger)
	} else {
		logger.Info("Using real connectors for external services")
		llmConnector = llm.NewConnector(cfg.LLMConnectorCfg, logger)
		embedder = embedding.NewConnector(cfg.EmbeddingConnectorCfg, logger)
	}

	// Assemble the prediction pipeline
	assembler := features.NewAssembler(embedder, bundle.CostEncoder, bundle.DurationEncoder, bundle.DurationScaler)
	pred := predictor.New(assembler, bundle)
	logger.Info("Predictor initialized")

	machine := questionnaire.New(cfg.Questions)
	activityLog := activity.NewLogger(cfg.ActivityLogPath, cfg.FeedbackLogPath)
	mail := mailer.New(cfg.SMTPCfg)
	if !mail.Enabled() {
		logger.Warn("SMTP is not configured, feedback mail notifications are disabled")
	}

	sessionUC := session.NewUsecase(
		sessionStore,
		planRepo,
		machine,
		pred,
		llmConnector,
		formatter.NewFactory(),
		activityLog,
		mail,
		logger,
	)
	logger.Info("Use cases initialized")

	return sessionUC, nil
}
