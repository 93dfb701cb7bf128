package coach

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"github.com/pitchperfect/pitch-backend/internal/pkg/logger"
	"github.com/pitchperfect/pitch-backend/internal/pkg/response"
	"github.com/pitchperfect/pitch-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   CoachUsecase
	validator *validator.Validator
}

func NewHandler(usecase CoachUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// StartSession handles POST /coach-session - Start new coach session
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartCoach")

	var req entity.StartCoachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateStartCoach(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	session, err := h.usecase.Start(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, toSessionDTO(session))
}

// GetSession handles GET /coach-session/{id} - Poll session state
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessionCtx(r, "GetCoach")
	sessionID := chi.URLParam(r, "id")

	session, err := h.usecase.Get(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// StartRecording handles POST /coach-session/{id}/recording/start
func (h *Handler) StartRecording(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessionCtx(r, "StartRecording")
	sessionID := chi.URLParam(r, "id")

	session, err := h.usecase.StartRecording(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// AppendFrame handles POST /coach-session/{id}/recording/frames
func (h *Handler) AppendFrame(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessionCtx(r, "AppendFrame")
	sessionID := chi.URLParam(r, "id")

	var req entity.AppendFrameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.usecase.AppendFrame(ctx, sessionID, &req); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// Tick handles POST /coach-session/{id}/recording/tick - Advance the
// duration counter by one second
func (h *Handler) Tick(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessionCtx(r, "Tick")
	sessionID := chi.URLParam(r, "id")

	if err := h.usecase.Tick(ctx, sessionID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// StopRecording handles POST /coach-session/{id}/recording/stop - Seal
// the recording and start processing. Audio is required, video optional.
func (h *Handler) StopRecording(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessionCtx(r, "StopRecording")
	sessionID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(h.validator.MaxUploadSize()); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "failed to parse form", err)
		return
	}

	audioFile, audioHeader, err := r.FormFile("audio")
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "audio file is required", err)
		return
	}
	defer audioFile.Close()

	if err := h.validator.ValidateAudioFile(audioHeader); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	audio, err := io.ReadAll(audioFile)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "failed to read audio", err)
		return
	}

	var video []byte
	if videoFile, videoHeader, err := r.FormFile("video"); err == nil {
		defer videoFile.Close()

		if err := h.validator.ValidateVideoFile(videoHeader); err != nil {
			h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
			return
		}

		video, err = io.ReadAll(videoFile)
		if err != nil {
			h.respondError(ctx, w, http.StatusBadRequest, "failed to read video", err)
			return
		}
	}

	duration, _ := strconv.Atoi(r.FormValue("duration_seconds"))

	session, err := h.usecase.StopRecording(ctx, sessionID, audio, video, duration)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusAccepted, toSessionDTO(session))
}

// Reset handles POST /coach-session/{id}/reset - Back to setup
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessionCtx(r, "ResetCoach")
	sessionID := chi.URLParam(r, "id")

	session, err := h.usecase.Reset(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// History handles GET /coach-session/history?user_id= - Past analyses
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CoachHistory")

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "user_id is required", entity.ErrMissingField)
		return
	}

	results, err := h.usecase.History(ctx, userID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, results)
}

func (h *Handler) sessionCtx(r *http.Request, action string) context.Context {
	return logger.AddFields(r.Context(),
		zap.String("session_id", chi.URLParam(r, "id")),
		zap.String("action", action),
	)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrCoachNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	case errors.Is(err, entity.ErrRecordingActive),
		errors.Is(err, entity.ErrNotRecording),
		errors.Is(err, entity.ErrWrongCoachStatus):
		h.respondError(ctx, w, http.StatusConflict, "invalid coach state", err)
	case errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrInvalidExtension),
		errors.Is(err, entity.ErrFileTooLarge):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
