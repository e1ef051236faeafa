package telegram

import (
	"time"

	"go.uber.org/zap"

	"github.com/solacetech/solace-backend/internal/config"
	"github.com/solacetech/solace-backend/internal/telegram/bot"
	"github.com/solacetech/solace-backend/internal/telegram/state"
)

// NewBot initializes the Telegram bot with all dependencies. The user-to-
// session binding lives in process memory and shares the session TTL, so a
// binding never outlives the session it points at by much.
func NewBot(
	cfg config.TelegramConfig,
	sessionTTL time.Duration,
	cleanupInterval time.Duration,
	sessionUC bot.SessionUsecase,
	logger *zap.Logger,
) (*bot.Bot, error) {
	storage := state.NewCacheStorage(sessionTTL, cleanupInterval)
	return bot.New(cfg, sessionUC, storage, logger)
}
