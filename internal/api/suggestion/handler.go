package suggestion

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"github.com/pitchperfect/pitch-backend/internal/pkg/logger"
	"github.com/pitchperfect/pitch-backend/internal/pkg/response"
	"github.com/pitchperfect/pitch-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   SuggestionUsecase
	validator *validator.Validator
}

func NewHandler(usecase SuggestionUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// GetBatch handles GET /suggestions?user_id=&type= - Current batch
func (h *Handler) GetBatch(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetSuggestions")

	userID := r.URL.Query().Get("user_id")
	suggestionType := r.URL.Query().Get("type")
	if userID == "" || suggestionType == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "user_id and type are required", entity.ErrMissingField)
		return
	}

	batch, err := h.usecase.Get(ctx, userID, suggestionType)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, batch)
}

// Regenerate handles POST /suggestions/regenerate - Fresh batch
func (h *Handler) Regenerate(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "RegenerateSuggestions")

	var req entity.RegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateRegenerate(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	batch, retryAfter, err := h.usecase.Regenerate(ctx, &req)
	if err != nil {
		if errors.Is(err, entity.ErrRateLimited) {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			response.RateLimited(w, "regeneration rate limit exceeded", seconds)
			return
		}
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, batch)
}

// SelectSuggestion handles POST /suggestions/select - Mark a choice
func (h *Handler) SelectSuggestion(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SelectSuggestion")

	var req entity.SelectSuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.UserID == "" || req.Type == "" || req.Suggestion == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", entity.ErrMissingField)
		return
	}

	batch, err := h.usecase.Select(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, batch)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrBatchNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	case errors.Is(err, entity.ErrUnknownSuggestion):
		h.respondError(ctx, w, http.StatusConflict, "suggestion not in current batch", err)
	case errors.Is(err, entity.ErrMissingField), errors.Is(err, entity.ErrInvalidParameter):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
