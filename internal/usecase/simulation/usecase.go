package simulation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"go.uber.org/zap"
)

// Usecase runs the interview/sales practice loop: an AI counterpart
// asks questions, the user answers, and the full conversation is
// scored when the session ends.
type Usecase struct {
	repo      SimulationRepository
	generator GenerationConnector
	asr       ASRConnector
	logger    *zap.Logger
}

func NewUsecase(
	repo SimulationRepository,
	generator GenerationConnector,
	asr ASRConnector,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		repo:      repo,
		generator: generator,
		asr:       asr,
		logger:    logger,
	}
}

// Start creates an active simulation and fetches the counterpart's
// opening turn.
func (u *Usecase) Start(ctx context.Context, req *entity.StartSimulationRequest) (*entity.Simulation, []*entity.SimulationTurn, error) {
	sim := &entity.Simulation{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Status:    entity.SimulationStatusActive,
		Scenario:  req.Scenario,
		CreatedAt: time.Now(),
	}

	if err := u.repo.Create(ctx, sim); err != nil {
		return nil, nil, err
	}

	opening, err := u.generator.NextCounterpartTurn(ctx, &entity.CounterpartTurnRequest{
		Scenario: sim.Scenario,
		Opening:  true,
	})
	if err != nil {
		return nil, nil, err
	}

	turn := &entity.SimulationTurn{
		ID:              uuid.NewString(),
		SimulationID:    sim.ID,
		TurnNumber:      1,
		Speaker:         entity.SpeakerCounterpart,
		Content:         opening.Content,
		IsFinalQuestion: opening.IsFinalQuestion,
		CreatedAt:       time.Now(),
	}

	if err := u.repo.AppendTurn(ctx, turn); err != nil {
		return nil, nil, err
	}

	ctxzap.Info(ctx, "simulation started",
		zap.String("simulation_id", sim.ID),
		zap.String("kind", string(sim.Scenario.Kind)),
	)

	return sim, []*entity.SimulationTurn{turn}, nil
}

func (u *Usecase) Get(ctx context.Context, simulationID string) (*entity.Simulation, []*entity.SimulationTurn, error) {
	sim, err := u.repo.Get(ctx, simulationID)
	if err != nil {
		return nil, nil, err
	}

	turns, err := u.repo.ListTurns(ctx, simulationID)
	if err != nil {
		return nil, nil, err
	}

	return sim, turns, nil
}

// SubmitTurn appends the user's answer and fetches the counterpart's
// reply. If the simulation ends while the reply is in flight, the
// reply is dropped: nothing may be appended after completion.
func (u *Usecase) SubmitTurn(ctx context.Context, simulationID, content string) (*entity.SimulationTurn, error) {
	sim, err := u.repo.Get(ctx, simulationID)
	if err != nil {
		return nil, err
	}

	if sim.Status != entity.SimulationStatusActive {
		return nil, entity.ErrSimulationNotActive
	}

	turns, err := u.repo.ListTurns(ctx, simulationID)
	if err != nil {
		return nil, err
	}

	userTurn := &entity.SimulationTurn{
		ID:           uuid.NewString(),
		SimulationID: simulationID,
		TurnNumber:   len(turns) + 1,
		Speaker:      entity.SpeakerUser,
		Content:      content,
		CreatedAt:    time.Now(),
	}

	if err := u.repo.AppendTurn(ctx, userTurn); err != nil {
		return nil, err
	}

	history := toHistory(append(turns, userTurn))

	reply, err := u.generator.NextCounterpartTurn(ctx, &entity.CounterpartTurnRequest{
		Scenario: sim.Scenario,
		History:  history,
	})
	if err != nil {
		return nil, err
	}

	// Re-check before appending: End may have completed the simulation
	// while the counterpart reply was in flight.
	current, err := u.repo.Get(ctx, simulationID)
	if err != nil {
		return nil, err
	}
	if current.Status != entity.SimulationStatusActive {
		ctxzap.Info(ctx, "dropping late counterpart reply",
			zap.String("simulation_id", simulationID))
		return nil, nil
	}

	counterpartTurn := &entity.SimulationTurn{
		ID:              uuid.NewString(),
		SimulationID:    simulationID,
		TurnNumber:      userTurn.TurnNumber + 1,
		Speaker:         entity.SpeakerCounterpart,
		Content:         reply.Content,
		Assessment:      reply.Assessment,
		IsFinalQuestion: reply.IsFinalQuestion,
		CreatedAt:       time.Now(),
	}

	if err := u.repo.AppendTurn(ctx, counterpartTurn); err != nil {
		return nil, err
	}

	return counterpartTurn, nil
}

// SubmitVoiceTurn transcribes a recorded answer and submits it as a
// regular turn.
func (u *Usecase) SubmitVoiceTurn(ctx context.Context, simulationID string, audio []byte, filename string) (*entity.SimulationTurn, error) {
	transcript, err := u.asr.TranscribeBytes(ctx, audio, filename)
	if err != nil {
		return nil, err
	}

	return u.SubmitTurn(ctx, simulationID, transcript.Text)
}

// End completes the simulation and scores the whole conversation.
func (u *Usecase) End(ctx context.Context, simulationID string) (*entity.Simulation, error) {
	sim, err := u.repo.Get(ctx, simulationID)
	if err != nil {
		return nil, err
	}

	if sim.Status == entity.SimulationStatusCompleted {
		return nil, entity.ErrSimulationCompleted
	}
	if sim.Status != entity.SimulationStatusActive {
		return nil, entity.ErrSimulationNotActive
	}

	turns, err := u.repo.ListTurns(ctx, simulationID)
	if err != nil {
		return nil, err
	}

	score, err := u.generator.ScoreSimulation(ctx, &entity.ScoreSimulationRequest{
		Scenario: sim.Scenario,
		History:  toHistory(turns),
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sim.Status = entity.SimulationStatusCompleted
	sim.DurationSeconds = int(now.Sub(sim.CreatedAt).Seconds())
	sim.Score = score
	sim.CompletedAt = &now

	if err := u.repo.Complete(ctx, sim); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "simulation completed",
		zap.String("simulation_id", sim.ID),
		zap.Int("overall_score", score.Overall),
		zap.Int("turn_count", len(turns)),
	)

	return sim, nil
}

func toHistory(turns []*entity.SimulationTurn) []entity.TurnMessage {
	history := make([]entity.TurnMessage, 0, len(turns))
	for _, turn := range turns {
		history = append(history, entity.TurnMessage{
			Speaker: turn.Speaker,
			Content: turn.Content,
		})
	}

	return history
}
