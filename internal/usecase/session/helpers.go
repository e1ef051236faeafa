package session

import (
	"context"
	"errors"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/solacetech/solace-backend/internal/entity"
	"github.com/solacetech/solace-backend/internal/plan"
)

func isEmptyAnswer(err error) bool {
	return errors.Is(err, entity.ErrEmptyAnswer)
}

func isComplete(err error) bool {
	return errors.Is(err, entity.ErrSessionComplete)
}

// conversationReply asks the LLM for the chat turn that acknowledges the
// answer and asks the next question. The answer itself is already committed,
// so an LLM outage degrades to the plain question text instead of failing
// the request.
func (uc *SessionUsecase) conversationReply(ctx context.Context, sess *entity.Session) string {
	var next *entity.QuestionSpec
	if pending, ok := uc.machine.Pending(sess); ok {
		next = &pending
	}

	systemPrompt := plan.BuildConversationPrompt(uc.machine.Specs(), sess.Answers, next)

	messages := make([]entity.ChatMessage, 0, len(sess.Transcript)+1)
	messages = append(messages, entity.ChatMessage{Role: entity.ChatRoleSystem, Content: systemPrompt})
	messages = append(messages, sess.Transcript...)

	reply, err := uc.llmConnector.Complete(ctx, messages)
	if err != nil {
		ctxzap.Warn(ctx, "conversation completion failed, falling back to plain question",
			zap.Error(err),
		)
		if next != nil {
			return next.Prompt
		}
		return "All project information has been collected. Would you like me to generate the construction plan?"
	}
	return reply
}

// durationHints asks the LLM for per-phase duration estimates. The hints are
// best-effort: any failure here just means the duration model predicts
// instead, so errors are logged and swallowed.
func (uc *SessionUsecase) durationHints(ctx context.Context, description string) map[string]string {
	raw, err := uc.llmConnector.Complete(ctx, []entity.ChatMessage{
		{Role: entity.ChatRoleSystem, Content: plan.DurationsSystemRole},
		{Role: entity.ChatRoleUser, Content: plan.BuildDurationsPrompt(description)},
	})
	if err != nil {
		ctxzap.Warn(ctx, "duration hint completion failed", zap.Error(err))
		return map[string]string{}
	}

	hints, err := plan.ParseDurations(raw)
	if err != nil {
		ctxzap.Warn(ctx, "duration hints did not parse", zap.Error(err))
		return map[string]string{}
	}
	return hints
}

func (uc *SessionUsecase) toStateDTO(sess *entity.Session, reply string) *entity.SessionStateDTO {
	dto := &entity.SessionStateDTO{
		SessionID:  sess.ID,
		Status:     sess.Status,
		CostBucket: sess.CostBucket,
		Answers:    sess.Answers,
		Reply:      reply,
		Transcript: sess.Transcript,
	}
	if pending, ok := uc.machine.Pending(sess); ok {
		dto.NextQuestion = &pending
	}
	return dto
}
