package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"github.com/pitchperfect/pitch-backend/internal/pkg/logger"
	"github.com/pitchperfect/pitch-backend/internal/pkg/response"
	"github.com/pitchperfect/pitch-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   WizardUsecase
	validator *validator.Validator
}

func NewHandler(usecase WizardUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// StartSession handles POST /wizard-session - Start new wizard run
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartWizard")

	var req entity.StartWizardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateStartWizard(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	session, err := h.usecase.Start(ctx, req.UserID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, toSessionDTO(session))
}

// GetSession handles GET /wizard-session/{id} - Get session state
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessionCtx(r, "GetWizard")
	sessionID := chi.URLParam(r, "id")

	session, err := h.usecase.Get(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// ConfirmStep handles POST /wizard-session/{id}/step - Confirm current step
func (h *Handler) ConfirmStep(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessionCtx(r, "ConfirmStep")
	sessionID := chi.URLParam(r, "id")

	var req entity.ConfirmStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateConfirmStep(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	session, err := h.usecase.ConfirmStep(ctx, sessionID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// Back handles POST /wizard-session/{id}/back - Go back one step
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessionCtx(r, "Back")
	sessionID := chi.URLParam(r, "id")

	session, err := h.usecase.Back(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// Generate handles POST /wizard-session/{id}/generate - Start script generation
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessionCtx(r, "Generate")
	sessionID := chi.URLParam(r, "id")

	session, err := h.usecase.Generate(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusAccepted, toSessionDTO(session))
}

// PrefillFromURL handles POST /wizard-session/{id}/prefill/url
func (h *Handler) PrefillFromURL(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessionCtx(r, "PrefillFromURL")
	sessionID := chi.URLParam(r, "id")

	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateScrapeURL(req.URL); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	session, err := h.usecase.PrefillFromURL(ctx, sessionID, req.URL)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// PrefillFromDocument handles POST /wizard-session/{id}/prefill/document
func (h *Handler) PrefillFromDocument(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessionCtx(r, "PrefillFromDocument")
	sessionID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(h.validator.MaxUploadSize()); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "failed to parse form", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "document file is required", err)
		return
	}
	defer file.Close()

	if err := h.validator.ValidateDocumentFile(header); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "failed to read file", err)
		return
	}

	session, err := h.usecase.PrefillFromDocument(ctx, sessionID, data, header.Filename)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// GetPitch handles GET /pitch/{id} - Get generated pitch
func (h *Handler) GetPitch(w http.ResponseWriter, r *http.Request) {
	ctx := h.pitchCtx(r, "GetPitch")
	pitchID := chi.URLParam(r, "id")

	pitch, err := h.usecase.GetPitch(ctx, pitchID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, pitch)
}

// Export handles GET /pitch/{id}/export?format= - Download the script
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := h.pitchCtx(r, "ExportPitch")
	pitchID := chi.URLParam(r, "id")

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatMarkdown)
	}

	data, contentType, filename, err := h.usecase.Export(ctx, pitchID, entity.ResultFormat(formatParam))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// AudioPreview handles GET /pitch/{id}/audio - Synthesized narration
func (h *Handler) AudioPreview(w http.ResponseWriter, r *http.Request) {
	ctx := h.pitchCtx(r, "AudioPreview")
	pitchID := chi.URLParam(r, "id")
	voiceID := r.URL.Query().Get("voice_id")

	data, contentType, err := h.usecase.AudioPreview(ctx, pitchID, voiceID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// SaveVersion handles POST /pitch/{id}/versions - Snapshot current script
func (h *Handler) SaveVersion(w http.ResponseWriter, r *http.Request) {
	ctx := h.pitchCtx(r, "SaveVersion")
	pitchID := chi.URLParam(r, "id")

	var req entity.SaveVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Name == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed",
			fmt.Errorf("%w: name", entity.ErrMissingField))
		return
	}

	version, err := h.usecase.SaveVersion(ctx, pitchID, req.Name)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, version)
}

// ListVersions handles GET /pitch/{id}/versions
func (h *Handler) ListVersions(w http.ResponseWriter, r *http.Request) {
	ctx := h.pitchCtx(r, "ListVersions")
	pitchID := chi.URLParam(r, "id")

	versions, err := h.usecase.ListVersions(ctx, pitchID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, versions)
}

// RestoreVersion handles POST /pitch/{id}/versions/{version_id}/restore
func (h *Handler) RestoreVersion(w http.ResponseWriter, r *http.Request) {
	ctx := h.pitchCtx(r, "RestoreVersion")
	pitchID := chi.URLParam(r, "id")
	versionID := chi.URLParam(r, "version_id")

	pitch, err := h.usecase.RestoreVersion(ctx, pitchID, versionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, pitch)
}

func (h *Handler) sessionCtx(r *http.Request, action string) context.Context {
	return logger.AddFields(r.Context(),
		zap.String("session_id", chi.URLParam(r, "id")),
		zap.String("action", action),
	)
}

func (h *Handler) pitchCtx(r *http.Request, action string) context.Context {
	return logger.AddFields(r.Context(),
		zap.String("pitch_id", chi.URLParam(r, "id")),
		zap.String("action", action),
	)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrWizardNotFound),
		errors.Is(err, entity.ErrPitchNotFound),
		errors.Is(err, entity.ErrVersionNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	case errors.Is(err, entity.ErrWrongWizardStep),
		errors.Is(err, entity.ErrNoPreviousStep),
		errors.Is(err, entity.ErrWizardCompleted):
		h.respondError(ctx, w, http.StatusConflict, "invalid wizard state", err)
	case errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidExtension),
		errors.Is(err, entity.ErrFileTooLarge):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
