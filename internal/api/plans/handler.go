package plans

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/solacetech/solace-backend/internal/entity"
	"github.com/solacetech/solace-backend/internal/pkg/logger"
	"github.com/solacetech/solace-backend/internal/pkg/response"
	"github.com/solacetech/solace-backend/internal/pkg/validator"
)

type Handler struct {
	usecase   PlanUsecase
	validator *validator.Validator
}

func NewHandler(usecase PlanUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// SavePlan handles POST /plans - Archive a session's generated plan
func (h *Handler) SavePlan(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SavePlan")

	var req entity.SavePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateSavePlan(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.usecase.SavePlan(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, saved)
}

// ListPlans handles GET /plans?skip=&limit= - Page through the archive
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListPlans")

	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	plans, err := h.usecase.ListPlans(ctx, skip, limit)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, plans)
}

// GetPlan handles GET /plans/{id}
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetPlan")
	planID := chi.URLParam(r, "id")

	plan, err := h.usecase.GetPlan(ctx, planID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, plan)
}

// DeletePlan handles DELETE /plans/{id}
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeletePlan")
	planID := chi.URLParam(r, "id")

	if err := h.usecase.DeletePlan(ctx, planID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrPlanNotFound), errors.Is(err, entity.ErrSessionNotFound):
		ctxzap.Warn(ctx, "resource not found", zap.Error(err))
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrPlanNotGenerated):
		ctxzap.Warn(ctx, "no plan to archive", zap.Error(err))
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, entity.ErrInvalidParameter), errors.Is(err, entity.ErrMissingField):
		ctxzap.Warn(ctx, "invalid parameter", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		ctxzap.Error(ctx, "internal error", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
