package simulation

import (
	"context"
	"encoding/json"
	"errors"
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
	usecase   SimulationUsecase
	validator *validator.Validator
}

func NewHandler(usecase SimulationUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// StartSimulation handles POST /simulation - Start a practice session
func (h *Handler) StartSimulation(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartSimulation")

	var req entity.StartSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateStartSimulation(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	sim, turns, err := h.usecase.Start(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, toSimulationDTO(sim, turns))
}

// GetSimulation handles GET /simulation/{id} - Full conversation state
func (h *Handler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	ctx := h.simulationCtx(r, "GetSimulation")
	simulationID := chi.URLParam(r, "id")

	sim, turns, err := h.usecase.Get(ctx, simulationID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSimulationDTO(sim, turns))
}

// SubmitTurn handles POST /simulation/{id}/turns - Submit a text answer
func (h *Handler) SubmitTurn(w http.ResponseWriter, r *http.Request) {
	ctx := h.simulationCtx(r, "SubmitTurn")
	simulationID := chi.URLParam(r, "id")

	var req entity.SubmitTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateSubmitTurn(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	turn, err := h.usecase.SubmitTurn(ctx, simulationID, req.Content)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	// A nil turn means the simulation was ended while the counterpart
	// reply was in flight; the reply was dropped.
	if turn == nil {
		response.Success(w, map[string]string{
			"status": "completed",
		})
		return
	}

	response.Success(w, turn)
}

// SubmitVoiceTurn handles POST /simulation/{id}/turns/audio
func (h *Handler) SubmitVoiceTurn(w http.ResponseWriter, r *http.Request) {
	ctx := h.simulationCtx(r, "SubmitVoiceTurn")
	simulationID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(h.validator.MaxUploadSize()); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "failed to parse form", err)
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "audio file is required", err)
		return
	}
	defer file.Close()

	if err := h.validator.ValidateAudioFile(header); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	audio, err := io.ReadAll(file)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "failed to read audio", err)
		return
	}

	turn, err := h.usecase.SubmitVoiceTurn(ctx, simulationID, audio, header.Filename)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	if turn == nil {
		response.Success(w, map[string]string{
			"status": "completed",
		})
		return
	}

	response.Success(w, turn)
}

// EndSimulation handles POST /simulation/{id}/end - End and score
func (h *Handler) EndSimulation(w http.ResponseWriter, r *http.Request) {
	ctx := h.simulationCtx(r, "EndSimulation")
	simulationID := chi.URLParam(r, "id")

	sim, err := h.usecase.End(ctx, simulationID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, sim)
}

func (h *Handler) simulationCtx(r *http.Request, action string) context.Context {
	return logger.AddFields(r.Context(),
		zap.String("simulation_id", chi.URLParam(r, "id")),
		zap.String("action", action),
	)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrSimulationNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	case errors.Is(err, entity.ErrSimulationNotActive),
		errors.Is(err, entity.ErrSimulationCompleted):
		h.respondError(ctx, w, http.StatusConflict, "invalid simulation state", err)
	case errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrInvalidExtension),
		errors.Is(err, entity.ErrFileTooLarge):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
