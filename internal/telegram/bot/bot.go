package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/solacetech/solace-backend/internal/config"
	"github.com/solacetech/solace-backend/internal/entity"
	"github.com/solacetech/solace-backend/internal/telegram/keyboard"
	"github.com/solacetech/solace-backend/internal/telegram/middleware"
	"github.com/solacetech/solace-backend/internal/telegram/render"
	"github.com/solacetech/solace-backend/internal/telegram/state"
)

// SessionUsecase is the slice of the chat-session use case the bot drives.
type SessionUsecase interface {
	StartSession(ctx context.Context, req *entity.StartSessionRequest) (*entity.SessionStateDTO, error)
	SubmitMessage(ctx context.Context, sessionID string, req *entity.SubmitMessageRequest) (*entity.SessionStateDTO, error)
	ResetSession(ctx context.Context, sessionID string) (*entity.SessionStateDTO, error)
	GeneratePlan(ctx context.Context, sessionID string) (*entity.PlanDocument, error)
	Estimates(ctx context.Context, sessionID string) (*entity.EstimateReport, error)
	ExportEstimates(ctx context.Context, sessionID string, format entity.ExportFormat) (*entity.ExportResult, error)
}

// Bot runs the Telegram long-polling loop and translates chat traffic into
// session use case calls. Each Telegram user maps to at most one session.
type Bot struct {
	api       *tgbotapi.BotAPI
	cfg       config.TelegramConfig
	sessionUC SessionUsecase
	states    state.Storage
	keyboard  *keyboard.Builder
	logger    *zap.Logger

	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware

	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// New authorizes against the Telegram API and wires the middleware chain.
func New(
	cfg config.TelegramConfig,
	sessionUC SessionUsecase,
	states state.Storage,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("authorize telegram bot: %w", err)
	}

	logger.Info("telegram bot authorized", zap.String("username", api.Self.UserName))

	return &Bot{
		api:         api,
		cfg:         cfg,
		sessionUC:   sessionUC,
		states:      states,
		keyboard:    keyboard.NewBuilder(),
		logger:      logger,
		loggingMW:   middleware.NewLoggingMiddleware(logger),
		recoveryMW:  middleware.NewRecoveryMiddleware(logger, api),
		rateLimitMW: middleware.NewRateLimiterMiddleware(cfg.RateLimitPerMinute, cfg.RateLimitBurst, logger, api),
		stopChan:    make(chan struct{}),
	}, nil
}

// Start begins long polling. Blocks until Stop is called or ctx is canceled.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	b.logger.Info("telegram bot started polling")

	for {
		select {
		case <-ctx.Done():
			return
		case <-b.stopChan:
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				return
			}
			b.wg.Add(1)
			go func(upd tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(upd)
			}(update)
		}
	}
}

// Stop shuts down polling and waits for in-flight handlers up to the
// configured timeout.
func (b *Bot) Stop() {
	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("telegram bot stopped")
	case <-time.After(time.Duration(b.cfg.ShutdownTimeout) * time.Second):
		b.logger.Warn("telegram bot shutdown timed out, abandoning in-flight handlers")
	}
}

// handleUpdateWithMiddleware chains rate limiting, logging and recovery
// around the actual handler.
func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u1 tgbotapi.Update) {
		b.loggingMW.Handle(u1, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				ctx := ctxzap.ToContext(context.Background(), b.logger)
				b.handleUpdate(ctx, u3)
			})
		})
	})
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallbackQuery(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	userID := message.From.ID
	chatID := message.Chat.ID

	sessionID, err := b.states.GetSessionID(ctx, userID)
	if err != nil {
		b.send(chatID, render.ErrNoSession, nil)
		return
	}

	st, err := b.sessionUC.SubmitMessage(ctx, sessionID, &entity.SubmitMessageRequest{Text: message.Text})
	if err != nil {
		b.sendUsecaseError(ctx, userID, chatID, err)
		return
	}

	var markup interface{}
	if st.Status == entity.SessionStatusComplete {
		markup = b.keyboard.ActionsKeyboard()
	}
	b.send(chatID, render.Answer(st), markup)
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("user_id", message.From.ID),
	)

	switch command {
	case "start":
		b.startSession(ctx, message.From.ID, message.Chat.ID)
	case "help":
		b.send(message.Chat.ID, render.MsgHelp, nil)
	case "reset":
		b.resetSession(ctx, message.From.ID, message.Chat.ID)
	default:
		b.send(message.Chat.ID, "❌ Unknown command. Send /start or /help.", nil)
	}
}

// startSession opens a fresh backend session and binds it to the Telegram
// user. An existing binding is replaced, the old session expires on its own.
func (b *Bot) startSession(ctx context.Context, userID, chatID int64) {
	st, err := b.sessionUC.StartSession(ctx, &entity.StartSessionRequest{
		UserID: strconv.FormatInt(userID, 10),
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to start session", zap.Error(err), zap.Int64("user_id", userID))
		b.send(chatID, render.ErrGeneric, nil)
		return
	}

	if err := b.states.SetSessionID(ctx, userID, st.SessionID); err != nil {
		ctxzap.Error(ctx, "failed to bind session", zap.Error(err), zap.Int64("user_id", userID))
		b.send(chatID, render.ErrGeneric, nil)
		return
	}

	for _, msg := range st.Transcript {
		if msg.Role == entity.ChatRoleAssistant {
			b.send(chatID, msg.Content, nil)
		}
	}
}

func (b *Bot) resetSession(ctx context.Context, userID, chatID int64) {
	sessionID, err := b.states.GetSessionID(ctx, userID)
	if err != nil {
		b.startSession(ctx, userID, chatID)
		return
	}

	st, err := b.sessionUC.ResetSession(ctx, sessionID)
	if err != nil {
		b.sendUsecaseError(ctx, userID, chatID, err)
		return
	}

	b.send(chatID, render.MsgSessionRestarted, nil)
	for _, msg := range st.Transcript {
		if msg.Role == entity.ChatRoleAssistant {
			b.send(chatID, msg.Content, nil)
		}
	}
}

func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	cb, err := keyboard.ParseCallback(query.Data)
	if err != nil {
		ctxzap.Error(ctx, "invalid callback data", zap.Error(err), zap.String("data", query.Data))
		b.answerCallback(query.ID, "❌ Invalid action")
		return
	}

	// Acknowledge immediately so the button stops spinning.
	b.answerCallback(query.ID, "")

	userID := query.From.ID
	chatID := query.Message.Chat.ID

	sessionID, err := b.states.GetSessionID(ctx, userID)
	if err != nil {
		b.send(chatID, render.ErrNoSession, nil)
		return
	}

	ctxzap.Info(ctx, "callback query received",
		zap.String("action", cb.Action),
		zap.String("value", cb.Value),
		zap.Int64("user_id", userID),
	)

	switch cb.Action {
	case keyboard.ActionPlan:
		b.generatePlan(ctx, userID, chatID, sessionID)
	case keyboard.ActionEstimates:
		b.estimates(ctx, userID, chatID, sessionID)
	case keyboard.ActionExport:
		b.export(ctx, userID, chatID, sessionID, cb.Value)
	case keyboard.ActionRestart:
		b.resetSession(ctx, userID, chatID)
	default:
		b.send(chatID, render.ErrGeneric, nil)
	}
}

func (b *Bot) generatePlan(ctx context.Context, userID, chatID int64, sessionID string) {
	b.send(chatID, render.MsgPlanPending, nil)

	doc, err := b.sessionUC.GeneratePlan(ctx, sessionID)
	if err != nil {
		b.sendUsecaseError(ctx, userID, chatID, err)
		return
	}

	b.sendMarkdown(chatID, render.Plan(doc), b.keyboard.ActionsKeyboard())
}

func (b *Bot) estimates(ctx context.Context, userID, chatID int64, sessionID string) {
	b.send(chatID, render.MsgEstimatesPending, nil)

	report, err := b.sessionUC.Estimates(ctx, sessionID)
	if err != nil {
		b.sendUsecaseError(ctx, userID, chatID, err)
		return
	}

	b.sendMarkdown(chatID, render.Estimates(report), b.keyboard.ExportKeyboard())
}

func (b *Bot) export(ctx context.Context, userID, chatID int64, sessionID, formatValue string) {
	format, err := entity.ParseExportFormat(formatValue)
	if err != nil {
		b.send(chatID, render.ErrGeneric, nil)
		return
	}

	result, err := b.sessionUC.ExportEstimates(ctx, sessionID, format)
	if err != nil {
		b.sendUsecaseError(ctx, userID, chatID, err)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  result.Filename,
		Bytes: result.Data,
	})
	if _, err := b.api.Send(doc); err != nil {
		ctxzap.Error(ctx, "failed to send export document",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.String("filename", result.Filename),
		)
		b.send(chatID, render.ErrGeneric, nil)
	}
}

// sendUsecaseError maps use case sentinels to user-facing texts. A vanished
// session also drops the stale Telegram binding.
func (b *Bot) sendUsecaseError(ctx context.Context, userID, chatID int64, err error) {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		if delErr := b.states.Delete(ctx, userID); delErr != nil {
			ctxzap.Error(ctx, "failed to drop stale binding", zap.Error(delErr), zap.Int64("user_id", userID))
		}
		b.send(chatID, render.ErrNoSession, nil)
	case errors.Is(err, entity.ErrSessionNotReady):
		b.send(chatID, render.ErrNotReady, nil)
	default:
		ctxzap.Error(ctx, "usecase error",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		b.send(chatID, render.ErrGeneric, nil)
	}
}

func (b *Bot) send(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// sendMarkdown sends with Markdown parse mode, falling back to plain text
// when Telegram rejects the formatting.
func (b *Bot) sendMarkdown(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("markdown send failed, retrying as plain text",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		b.send(chatID, text, markup)
	}
}

func (b *Bot) answerCallback(callbackID, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		b.logger.Error("failed to answer callback", zap.Error(err))
	}
}
