package session

import (
	"context"

	"github.com/solacetech/solace-backend/internal/entity"
)

type LLMConnector interface {
	Complete(ctx context.Context, messages []entity.ChatMessage) (string, error)
}

type Mailer interface {
	Enabled() bool
	Send(subject, body string) error
}

type ActivityLogger interface {
	LogActivity(event entity.ActivityEvent) error
	LogFeedback(fb entity.Feedback) error
}
