package plans

import (
	"context"

	"github.com/solacetech/solace-backend/internal/entity"
)

type PlanUsecase interface {
	SavePlan(ctx context.Context, req *entity.SavePlanRequest) (*entity.SavedPlan, error)
	ListPlans(ctx context.Context, skip, limit int) ([]*entity.SavedPlan, error)
	GetPlan(ctx context.Context, planID string) (*entity.SavedPlan, error)
	DeletePlan(ctx context.Context, planID string) error
}
