// Package support exposes the feedback and activity-log endpoints.
package support

import (
	"encoding/json"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/solacetech/solace-backend/internal/entity"
	"github.com/solacetech/solace-backend/internal/pkg/logger"
	"github.com/solacetech/solace-backend/internal/pkg/response"
	"github.com/solacetech/solace-backend/internal/pkg/validator"
)

type Handler struct {
	usecase   SupportUsecase
	validator *validator.Validator
}

func NewHandler(usecase SupportUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// SubmitFeedback handles POST /feedback
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SubmitFeedback")

	var req entity.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateFeedback(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.usecase.SubmitFeedback(ctx, &req)
	if err != nil {
		ctxzap.Error(ctx, "failed to save feedback", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to save feedback")
		return
	}

	response.Created(w, resp)
}

// LogActivity handles POST /activity
func (h *Handler) LogActivity(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "LogActivity")

	var req entity.ActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateActivity(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.usecase.LogActivity(ctx, &req); err != nil {
		ctxzap.Error(ctx, "failed to log activity", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to log activity")
		return
	}

	response.NoContent(w)
}
