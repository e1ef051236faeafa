package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/solacetech/solace-backend/internal/entity"
	"github.com/solacetech/solace-backend/internal/pkg/logger"
	"github.com/solacetech/solace-backend/internal/pkg/response"
	"github.com/solacetech/solace-backend/internal/pkg/validator"
	"github.com/solacetech/solace-backend/internal/plan"
)

type Handler struct {
	usecase   SessionUsecase
	validator *validator.Validator
}

func NewHandler(usecase SessionUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// StartSession handles POST /chat-session - Start a new questionnaire session
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartSession")

	req := entity.StartSessionRequest{}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
			response.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if err := h.validator.ValidateStartSession(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.usecase.StartSession(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, state)
}

// GetSession handles GET /chat-session/{id} - Get session state
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "GetSession")

	state, err := h.usecase.GetSession(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, state)
}

// SubmitMessage handles POST /chat-session/{id}/message - Submit user text
func (h *Handler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "SubmitMessage")

	var req entity.SubmitMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateSubmitMessage(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.usecase.SubmitMessage(ctx, sessionID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, state)
}

// ResetSession handles POST /chat-session/{id}/reset - Start the questionnaire over
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "ResetSession")

	state, err := h.usecase.ResetSession(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, state)
}

// GeneratePlan handles POST /chat-session/{id}/plan - Generate the construction plan
func (h *Handler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "GeneratePlan")

	doc, err := h.usecase.GeneratePlan(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, doc)
}

// Estimates handles POST /chat-session/{id}/estimates - Run the regression models
func (h *Handler) Estimates(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "Estimates")

	report, err := h.usecase.Estimates(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, report)
}

// Export handles GET /chat-session/{id}/export?format=... - Download estimates
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "Export")

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatXLSX)
	}

	format, err := entity.ParseExportFormat(formatParam)
	if err != nil {
		ctxzap.Warn(ctx, "invalid format parameter", zap.String("format", formatParam))
		response.Error(w, http.StatusBadRequest, "format must be one of: xlsx, pdf, csv, md")
		return
	}

	result, err := h.usecase.ExportEstimates(ctx, sessionID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

func (h *Handler) sessionContext(r *http.Request, action string) (context.Context, string) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", action),
	)
	return ctx, sessionID
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	var parseErr *plan.ParseError

	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		ctxzap.Warn(ctx, "session not found", zap.Error(err))
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrInvalidParameter), errors.Is(err, entity.ErrMissingField):
		ctxzap.Warn(ctx, "invalid parameter", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrSessionNotReady), errors.Is(err, entity.ErrSessionComplete),
		errors.Is(err, entity.ErrPlanNotGenerated):
		ctxzap.Warn(ctx, "wrong session state", zap.Error(err))
		response.Error(w, http.StatusConflict, err.Error())
	case errors.As(err, &parseErr):
		// The model replied, but not with usable JSON.
		ctxzap.Error(ctx, "LLM response did not parse", zap.Error(err))
		response.Error(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, entity.ErrPredictionFailed):
		ctxzap.Error(ctx, "prediction failed", zap.Error(err))
		response.Error(w, http.StatusBadGateway, err.Error())
	default:
		ctxzap.Error(ctx, "internal error", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
