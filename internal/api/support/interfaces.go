package support

import (
	"context"

	"github.com/solacetech/solace-backend/internal/entity"
)

type SupportUsecase interface {
	SubmitFeedback(ctx context.Context, req *entity.FeedbackRequest) (*entity.FeedbackResponse, error)
	LogActivity(ctx context.Context, req *entity.ActivityRequest) error
}
