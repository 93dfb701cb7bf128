package prefs

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"github.com/pitchperfect/pitch-backend/internal/pkg/logger"
	"github.com/pitchperfect/pitch-backend/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	store PrefsStore
}

func NewHandler(store PrefsStore) *Handler {
	return &Handler{store: store}
}

// GetPreference handles GET /preferences/{user_id}/{key}
func (h *Handler) GetPreference(w http.ResponseWriter, r *http.Request) {
	ctx := h.prefCtx(r, "GetPreference")
	userID := chi.URLParam(r, "user_id")
	key := chi.URLParam(r, "key")

	var value json.RawMessage
	if !h.store.Get(ctx, userID, key, &value) {
		response.Error(w, http.StatusNotFound, "preference not found")
		return
	}

	response.Success(w, map[string]any{
		"key":   key,
		"value": value,
	})
}

// SetPreference handles PUT /preferences/{user_id}/{key}
func (h *Handler) SetPreference(w http.ResponseWriter, r *http.Request) {
	ctx := h.prefCtx(r, "SetPreference")
	userID := chi.URLParam(r, "user_id")
	key := chi.URLParam(r, "key")

	var req entity.SetPreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.store.Set(ctx, userID, key, req.Value); err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to save preference", err)
		return
	}

	response.NoContent(w)
}

// DeletePreference handles DELETE /preferences/{user_id}/{key}
func (h *Handler) DeletePreference(w http.ResponseWriter, r *http.Request) {
	ctx := h.prefCtx(r, "DeletePreference")
	userID := chi.URLParam(r, "user_id")
	key := chi.URLParam(r, "key")

	if err := h.store.Delete(ctx, userID, key); err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to delete preference", err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) prefCtx(r *http.Request, action string) context.Context {
	return logger.AddFields(r.Context(),
		zap.String("user_id", chi.URLParam(r, "user_id")),
		zap.String("key", chi.URLParam(r, "key")),
		zap.String("action", action),
	)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}
