package session

import (
	"context"

	"github.com/solacetech/solace-backend/internal/entity"
)

type SessionUsecase interface {
	StartSession(ctx context.Context, req *entity.StartSessionRequest) (*entity.SessionStateDTO, error)
	GetSession(ctx context.Context, sessionID string) (*entity.SessionStateDTO, error)
	SubmitMessage(ctx context.Context, sessionID string, req *entity.SubmitMessageRequest) (*entity.SessionStateDTO, error)
	ResetSession(ctx context.Context, sessionID string) (*entity.SessionStateDTO, error)
	GeneratePlan(ctx context.Context, sessionID string) (*entity.PlanDocument, error)
	Estimates(ctx context.Context, sessionID string) (*entity.EstimateReport, error)
	ExportEstimates(ctx context.Context, sessionID string, format entity.ExportFormat) (*entity.ExportResult, error)
}
