// Package session orchestrates the chat questionnaire: answer collection,
// plan generation, phase estimation, export and the plan archive.
package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/solacetech/solace-backend/internal/entity"
	"github.com/solacetech/solace-backend/internal/pkg/formatter"
	"github.com/solacetech/solace-backend/internal/plan"
	"github.com/solacetech/solace-backend/internal/predictor"
	"github.com/solacetech/solace-backend/internal/questionnaire"
	"github.com/solacetech/solace-backend/internal/repository"
)

// descriptionKey is the questionnaire field the embedding models run over.
const descriptionKey entity.QuestionKey = "ProjectDescription"

// SessionUsecase implements the questionnaire business logic.
type SessionUsecase struct {
	sessionStore  repository.SessionStore
	planRepo      repository.PlanRepository
	machine       *questionnaire.Machine
	predictor     *predictor.Predictor
	llmConnector  LLMConnector
	formatFactory *formatter.Factory
	activityLog   ActivityLogger
	mailer        Mailer
	logger        *zap.Logger
}

// NewUsecase creates a new session use case
func NewUsecase(
	sessionStore repository.SessionStore,
	planRepo repository.PlanRepository,
	machine *questionnaire.Machine,
	pred *predictor.Predictor,
	llmConnector LLMConnector,
	formatFactory *formatter.Factory,
	activityLog ActivityLogger,
	mailer Mailer,
	logger *zap.Logger,
) *SessionUsecase {
	return &SessionUsecase{
		sessionStore:  sessionStore,
		planRepo:      planRepo,
		machine:       machine,
		predictor:     pred,
		llmConnector:  llmConnector,
		formatFactory: formatFactory,
		activityLog:   activityLog,
		mailer:        mailer,
		logger:        logger,
	}
}

// StartSession creates a session with every answer open and the first
// question pending. The welcome message and the first question open the
// transcript.
func (uc *SessionUsecase) StartSession(ctx context.Context, req *entity.StartSessionRequest) (*entity.SessionStateDTO, error) {
	bucket := req.CostBucket
	if bucket == "" {
		bucket = entity.CostBucketHigh
	}
	if err := bucket.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	sess := &entity.Session{
		ID:         uuid.New().String(),
		UserID:     req.UserID,
		CostBucket: bucket,
	}
	uc.machine.Begin(sess)

	sess.Transcript = append(sess.Transcript, entity.ChatMessage{
		Role:    entity.ChatRoleAssistant,
		Content: plan.WelcomeMessage,
	})
	if pending, ok := uc.machine.Pending(sess); ok {
		sess.Transcript = append(sess.Transcript, entity.ChatMessage{
			Role:    entity.ChatRoleAssistant,
			Content: pending.Prompt,
		})
	}

	if err := uc.sessionStore.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	ctxzap.Info(ctx, "session started",
		zap.String("session_id", sess.ID),
		zap.String("cost_bucket", string(bucket)),
	)

	return uc.toStateDTO(sess, plan.WelcomeMessage), nil
}

// GetSession returns the session state without mutating anything.
func (uc *SessionUsecase) GetSession(ctx context.Context, sessionID string) (*entity.SessionStateDTO, error) {
	sess, err := uc.sessionStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return uc.toStateDTO(sess, ""), nil
}

// SubmitMessage commits the user's text as the answer to the pending
// question and produces the assistant's next reply.
//
// A whitespace-only message changes no state and simply re-prompts the
// pending question. Once the questionnaire is complete further messages get
// a conversational reply but never touch the committed answers.
func (uc *SessionUsecase) SubmitMessage(ctx context.Context, sessionID string, req *entity.SubmitMessageRequest) (*entity.SessionStateDTO, error) {
	sess, err := uc.sessionStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	err = uc.machine.Submit(sess, req.Text)
	switch {
	case err == nil:
		// answer committed
	case isEmptyAnswer(err):
		pending, ok := uc.machine.Pending(sess)
		if !ok {
			return nil, entity.ErrSessionComplete
		}
		ctxzap.Info(ctx, "empty answer, re-prompting", zap.String("question", string(pending.Key)))
		return uc.toStateDTO(sess, pending.Prompt), nil
	case isComplete(err):
		// fall through: conversational turn on a finished questionnaire
	default:
		return nil, err
	}

	sess.Transcript = append(sess.Transcript, entity.ChatMessage{
		Role:    entity.ChatRoleUser,
		Content: req.Text,
	})

	reply := uc.conversationReply(ctx, sess)
	sess.Transcript = append(sess.Transcript, entity.ChatMessage{
		Role:    entity.ChatRoleAssistant,
		Content: reply,
	})

	if err := uc.sessionStore.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return uc.toStateDTO(sess, reply), nil
}

// ResetSession clears answers, transcript and any generated plan, and starts
// the questionnaire over.
func (uc *SessionUsecase) ResetSession(ctx context.Context, sessionID string) (*entity.SessionStateDTO, error) {
	sess, err := uc.sessionStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	uc.machine.Reset(sess)

	sess.Transcript = append(sess.Transcript, entity.ChatMessage{
		Role:    entity.ChatRoleAssistant,
		Content: plan.WelcomeMessage,
	})
	if pending, ok := uc.machine.Pending(sess); ok {
		sess.Transcript = append(sess.Transcript, entity.ChatMessage{
			Role:    entity.ChatRoleAssistant,
			Content: pending.Prompt,
		})
	}

	if err := uc.sessionStore.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	ctxzap.Info(ctx, "session reset", zap.String("session_id", sess.ID))

	return uc.toStateDTO(sess, plan.WelcomeMessage), nil
}

// GeneratePlan asks the LLM for the structured construction plan. The
// questionnaire must be complete. The parsed plan is kept on the session;
// a parse failure leaves the session untouched.
func (uc *SessionUsecase) GeneratePlan(ctx context.Context, sessionID string) (*entity.PlanDocument, error) {
	sess, err := uc.sessionStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if sess.Status != entity.SessionStatusComplete {
		return nil, entity.ErrSessionNotReady
	}

	prompt := plan.BuildPlanPrompt(uc.machine.Specs(), sess.Answers)

	raw, err := uc.llmConnector.Complete(ctx, []entity.ChatMessage{
		{Role: entity.ChatRoleSystem, Content: plan.PlanSystemRole},
		{Role: entity.ChatRoleUser, Content: prompt},
	})
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	doc, err := plan.ParsePlan(raw)
	if err != nil {
		return nil, err
	}

	sess.Plan = doc
	if err := uc.sessionStore.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	ctxzap.Info(ctx, "plan generated",
		zap.String("session_id", sess.ID),
		zap.Int("phase_count", len(doc.ConstructionPhases)),
	)

	return doc, nil
}

// Estimates runs the regression models over the collected project
// description. The LLM is asked for per-phase duration hints first; hints
// that fail to parse silently fall back to the fitted duration model. When a
// plan exists its material costs are reconciled against the predicted total.
func (uc *SessionUsecase) Estimates(ctx context.Context, sessionID string) (*entity.EstimateReport, error) {
	sess, err := uc.sessionStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if sess.Status != entity.SessionStatusComplete {
		return nil, entity.ErrSessionNotReady
	}

	description := ""
	if v := sess.Answers[descriptionKey]; v != nil {
		description = *v
	}

	hints := uc.durationHints(ctx, description)

	estimates, err := uc.predictor.PredictPhases(ctx, description, sess.CostBucket, hints)
	if err != nil {
		return nil, err
	}

	report := &entity.EstimateReport{
		Phases:    estimates,
		Materials: []entity.AdjustedResource{},
	}
	for _, est := range estimates {
		report.TotalCostUSD += est.CostUSD
		report.TotalDurationWeeks += est.DurationWeeks
	}

	if sess.Plan != nil {
		flat := plan.FlattenResources(sess.Plan)
		report.Materials = plan.ReconcileResources(flat, report.TotalCostUSD)
		report.MaterialsTotalUSD = plan.TotalCost(report.Materials)
	}

	ctxzap.Info(ctx, "estimates produced",
		zap.String("session_id", sess.ID),
		zap.Float64("total_cost_usd", report.TotalCostUSD),
		zap.Float64("total_duration_weeks", report.TotalDurationWeeks),
	)

	return report, nil
}

// ExportEstimates renders the estimate report as a downloadable document.
func (uc *SessionUsecase) ExportEstimates(ctx context.Context, sessionID string, format entity.ExportFormat) (*entity.ExportResult, error) {
	report, err := uc.Estimates(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	f, err := uc.formatFactory.Create(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	data, err := f.Format(report)
	if err != nil {
		return nil, fmt.Errorf("format estimates: %w", err)
	}

	return &entity.ExportResult{
		Data:        data,
		ContentType: f.ContentType(),
		Filename:    "solace_estimates" + f.FileExtension(),
	}, nil
}

// SavePlan archives the session's generated plan.
func (uc *SessionUsecase) SavePlan(ctx context.Context, req *entity.SavePlanRequest) (*entity.SavedPlan, error) {
	sess, err := uc.sessionStore.Get(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	if sess.Plan == nil {
		return nil, entity.ErrPlanNotGenerated
	}

	saved, err := uc.planRepo.Create(ctx, entity.SavedPlan{
		ID:         uuid.New().String(),
		SessionID:  sess.ID,
		Title:      req.Title,
		CostBucket: sess.CostBucket,
		Document:   *sess.Plan,
	})
	if err != nil {
		return nil, fmt.Errorf("archive plan: %w", err)
	}

	ctxzap.Info(ctx, "plan archived",
		zap.String("plan_id", saved.ID),
		zap.String("session_id", sess.ID),
	)

	return saved, nil
}

// ListPlans pages through the plan archive.
func (uc *SessionUsecase) ListPlans(ctx context.Context, skip, limit int) ([]*entity.SavedPlan, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if skip < 0 {
		skip = 0
	}
	return uc.planRepo.List(ctx, skip, limit)
}

// GetPlan fetches one archived plan.
func (uc *SessionUsecase) GetPlan(ctx context.Context, planID string) (*entity.SavedPlan, error) {
	return uc.planRepo.Get(ctx, planID)
}

// DeletePlan removes one archived plan.
func (uc *SessionUsecase) DeletePlan(ctx context.Context, planID string) error {
	return uc.planRepo.Delete(ctx, planID)
}

// SubmitFeedback records feedback to the CSV log and then tries to notify by
// mail. Mail failure is a warning on the response, never an error: the row is
// already saved.
func (uc *SessionUsecase) SubmitFeedback(ctx context.Context, req *entity.FeedbackRequest) (*entity.FeedbackResponse, error) {
	fb := entity.Feedback{
		UserID: req.UserID,
		Email:  req.Email,
		Text:   req.Text,
	}

	if err := uc.activityLog.LogFeedback(fb); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}

	resp := &entity.FeedbackResponse{Saved: true}

	if !uc.mailer.Enabled() {
		resp.MailWarning = "mail delivery is not configured"
		return resp, nil
	}

	body := fmt.Sprintf("User: %s\nEmail: %s\n\n%s", req.UserID, req.Email, req.Text)
	if err := uc.mailer.Send("New Solace feedback", body); err != nil {
		ctxzap.Warn(ctx, "feedback mail failed", zap.Error(err))
		resp.MailWarning = err.Error()
		return resp, nil
	}

	resp.MailSent = true
	return resp, nil
}

// LogActivity appends one activity event.
func (uc *SessionUsecase) LogActivity(ctx context.Context, req *entity.ActivityRequest) error {
	return uc.activityLog.LogActivity(entity.ActivityEvent{
		UserID: req.UserID,
		Page:   req.Page,
		Action: req.Action,
	})
}
