package survey

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"github.com/pitchperfect/pitch-backend/internal/pkg/logger"
	"github.com/pitchperfect/pitch-backend/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	usecase SurveyUsecase
}

func NewHandler(usecase SurveyUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// GetSurvey handles GET /survey/{id} - Survey definition
func (h *Handler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	ctx := h.surveyCtx(r, "GetSurvey")
	surveyID := chi.URLParam(r, "id")

	survey, err := h.usecase.GetSurvey(ctx, surveyID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, survey)
}

// GetProgress handles GET /survey/{id}/progress?user_id=
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	ctx := h.surveyCtx(r, "SurveyProgress")
	surveyID := chi.URLParam(r, "id")

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "user_id is required", entity.ErrMissingField)
		return
	}

	progress, err := h.usecase.Progress(ctx, userID, surveyID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, progress)
}

// Answer handles POST /survey/{id}/answers - Store one answer
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	ctx := h.surveyCtx(r, "SurveyAnswer")
	surveyID := chi.URLParam(r, "id")

	var req entity.SurveyAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.UserID == "" || req.QuestionID == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", entity.ErrMissingField)
		return
	}

	progress, err := h.usecase.Answer(ctx, surveyID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, progress)
}

// Submit handles POST /survey/{id}/submit - Finalize the survey
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := h.surveyCtx(r, "SurveySubmit")
	surveyID := chi.URLParam(r, "id")

	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.UserID == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", entity.ErrMissingField)
		return
	}

	submitted, err := h.usecase.Submit(ctx, req.UserID, surveyID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, submitted)
}

// SessionEvent handles POST /survey/events - Trigger engine input
func (h *Handler) SessionEvent(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SurveySessionEvent")

	var req entity.SessionEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.UserID == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", entity.ErrMissingField)
		return
	}

	offer, err := h.usecase.SessionEvent(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, offer)
}

func (h *Handler) surveyCtx(r *http.Request, action string) context.Context {
	return logger.AddFields(r.Context(),
		zap.String("survey_id", chi.URLParam(r, "id")),
		zap.String("action", action),
	)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrSurveyNotFound),
		errors.Is(err, entity.ErrQuestionNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	case errors.Is(err, entity.ErrQuestionHidden),
		errors.Is(err, entity.ErrSurveyCompleted):
		h.respondError(ctx, w, http.StatusConflict, "invalid survey state", err)
	case errors.Is(err, entity.ErrInvalidAnswerType),
		errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidParameter):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
