package simulation

import (
	"context"
	"testing"

	"github.com/pitchperfect/pitch-backend/internal/entity"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSimulationRepo struct {
	sims  map[string]entity.Simulation
	turns map[string][]*entity.SimulationTurn
}

func newMockSimulationRepo() *mockSimulationRepo {
	return &mockSimulationRepo{
		sims:  map[string]entity.Simulation{},
		turns: map[string][]*entity.SimulationTurn{},
	}
}

func (m *mockSimulationRepo) Create(ctx context.Context, sim *entity.Simulation) error {
	m.sims[sim.ID] = *sim
	return nil
}

func (m *mockSimulationRepo) Get(ctx context.Context, simulationID string) (*entity.Simulation, error) {
	sim, ok := m.sims[simulationID]
	if !ok {
		return nil, entity.ErrSimulationNotFound
	}
	copied := sim
	return &copied, nil
}

func (m *mockSimulationRepo) Complete(ctx context.Context, sim *entity.Simulation) error {
	stored, ok := m.sims[sim.ID]
	if !ok {
		return entity.ErrSimulationNotFound
	}
	if stored.Status != entity.SimulationStatusActive {
		return entity.ErrSimulationCompleted
	}
	m.sims[sim.ID] = *sim
	return nil
}

func (m *mockSimulationRepo) AppendTurn(ctx context.Context, turn *entity.SimulationTurn) error {
	copied := *turn
	m.turns[turn.SimulationID] = append(m.turns[turn.SimulationID], &copied)
	return nil
}

func (m *mockSimulationRepo) ListTurns(ctx context.Context, simulationID string) ([]*entity.SimulationTurn, error) {
	return m.turns[simulationID], nil
}

type mockSimGenerator struct {
	nextTurn   *entity.CounterpartTurnResponse
	nextErr    error
	onNextTurn func(req *entity.CounterpartTurnRequest)
	score      *entity.SimulationScore
	scoreErr   error
	turnCalls  []*entity.CounterpartTurnRequest
}

func (m *mockSimGenerator) NextCounterpartTurn(ctx context.Context, req *entity.CounterpartTurnRequest) (*entity.CounterpartTurnResponse, error) {
	m.turnCalls = append(m.turnCalls, req)
	if m.onNextTurn != nil {
		m.onNextTurn(req)
	}
	return m.nextTurn, m.nextErr
}

func (m *mockSimGenerator) ScoreSimulation(ctx context.Context, req *entity.ScoreSimulationRequest) (*entity.SimulationScore, error) {
	return m.score, m.scoreErr
}

type mockSimASR struct {
	resp *entity.ASRTranscribeResponse
	err  error
}

func (m *mockSimASR) TranscribeBytes(ctx context.Context, audio []byte, filename string) (*entity.ASRTranscribeResponse, error) {
	return m.resp, m.err
}

type simFixture struct {
	uc        *Usecase
	repo      *mockSimulationRepo
	generator *mockSimGenerator
	asr       *mockSimASR
}

func newSimFixture() *simFixture {
	f := &simFixture{
		repo: newMockSimulationRepo(),
		generator: &mockSimGenerator{
			nextTurn: &entity.CounterpartTurnResponse{Content: "Tell me about yourself"},
			score:    &entity.SimulationScore{Overall: 78, Summary: "solid answers"},
		},
		asr: &mockSimASR{resp: &entity.ASRTranscribeResponse{Text: "my spoken answer"}},
	}
	f.uc = NewUsecase(f.repo, f.generator, f.asr, zap.NewNop())
	return f
}

func interviewScenario() entity.SimulationScenario {
	return entity.SimulationScenario{
		Kind: entity.SimulationKindInterview,
		Role: "Backend engineer",
	}
}

func TestStart_CreatesActiveSimulationWithOpeningTurn(t *testing.T) {
	f := newSimFixture()

	sim, turns, err := f.uc.Start(context.Background(), &entity.StartSimulationRequest{
		UserID:   "user-1",
		Scenario: interviewScenario(),
	})
	require.NoError(t, err)
	require.Equal(t, entity.SimulationStatusActive, sim.Status)
	require.Len(t, turns, 1)
	require.Equal(t, 1, turns[0].TurnNumber)
	require.Equal(t, entity.SpeakerCounterpart, turns[0].Speaker)
	require.True(t, f.generator.turnCalls[0].Opening)
}

func TestSubmitTurn_AppendsUserAndCounterpartTurns(t *testing.T) {
	f := newSimFixture()
	ctx := context.Background()

	sim, _, err := f.uc.Start(ctx, &entity.StartSimulationRequest{
		UserID:   "user-1",
		Scenario: interviewScenario(),
	})
	require.NoError(t, err)

	f.generator.nextTurn = &entity.CounterpartTurnResponse{Content: "Why this company?"}

	reply, err := f.uc.SubmitTurn(ctx, sim.ID, "I have five years of Go experience")
	require.NoError(t, err)
	require.Equal(t, 3, reply.TurnNumber)
	require.Equal(t, entity.SpeakerCounterpart, reply.Speaker)
	require.Equal(t, "Why this company?", reply.Content)

	_, turns, err := f.uc.Get(ctx, sim.ID)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	for i, turn := range turns {
		require.Equal(t, i+1, turn.TurnNumber, "turn numbers stay strictly increasing")
	}

	// The reply request carried the full history including the new answer.
	lastReq := f.generator.turnCalls[len(f.generator.turnCalls)-1]
	require.Len(t, lastReq.History, 2)
	require.Equal(t, "I have five years of Go experience", lastReq.History[1].Content)
}

func TestSubmitTurn_RejectedWhenNotActive(t *testing.T) {
	f := newSimFixture()
	ctx := context.Background()

	sim, _, err := f.uc.Start(ctx, &entity.StartSimulationRequest{
		UserID:   "user-1",
		Scenario: interviewScenario(),
	})
	require.NoError(t, err)

	_, err = f.uc.End(ctx, sim.ID)
	require.NoError(t, err)

	_, err = f.uc.SubmitTurn(ctx, sim.ID, "too late")
	require.ErrorIs(t, err, entity.ErrSimulationNotActive)
}

func TestSubmitTurn_LateReplyDroppedWhenEndedMidFlight(t *testing.T) {
	f := newSimFixture()
	ctx := context.Background()

	sim, _, err := f.uc.Start(ctx, &entity.StartSimulationRequest{
		UserID:   "user-1",
		Scenario: interviewScenario(),
	})
	require.NoError(t, err)

	// End the simulation while the counterpart reply is in flight.
	f.generator.onNextTurn = func(req *entity.CounterpartTurnRequest) {
		if len(req.History) == 0 {
			return
		}
		f.generator.onNextTurn = nil
		_, endErr := f.uc.End(ctx, sim.ID)
		require.NoError(t, endErr)
	}

	reply, err := f.uc.SubmitTurn(ctx, sim.ID, "my answer")
	require.NoError(t, err)
	require.Nil(t, reply, "late counterpart reply must be dropped")

	// The user's turn stays; nothing was appended after completion.
	_, turns, err := f.uc.Get(ctx, sim.ID)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	require.Equal(t, entity.SpeakerUser, turns[len(turns)-1].Speaker)
}

func TestSubmitVoiceTurn_TranscribesBeforeSubmitting(t *testing.T) {
	f := newSimFixture()
	ctx := context.Background()

	sim, _, err := f.uc.Start(ctx, &entity.StartSimulationRequest{
		UserID:   "user-1",
		Scenario: interviewScenario(),
	})
	require.NoError(t, err)

	_, err = f.uc.SubmitVoiceTurn(ctx, sim.ID, []byte("audio"), "answer.webm")
	require.NoError(t, err)

	_, turns, err := f.uc.Get(ctx, sim.ID)
	require.NoError(t, err)
	require.Equal(t, "my spoken answer", turns[1].Content)
}

func TestEnd_ScoresAndCompletes(t *testing.T) {
	f := newSimFixture()
	ctx := context.Background()

	sim, _, err := f.uc.Start(ctx, &entity.StartSimulationRequest{
		UserID:   "user-1",
		Scenario: interviewScenario(),
	})
	require.NoError(t, err)

	ended, err := f.uc.End(ctx, sim.ID)
	require.NoError(t, err)
	require.Equal(t, entity.SimulationStatusCompleted, ended.Status)
	require.NotNil(t, ended.Score)
	require.Equal(t, 78, ended.Score.Overall)
	require.NotNil(t, ended.CompletedAt)
}

func TestEnd_Idempotency(t *testing.T) {
	f := newSimFixture()
	ctx := context.Background()

	sim, _, err := f.uc.Start(ctx, &entity.StartSimulationRequest{
		UserID:   "user-1",
		Scenario: interviewScenario(),
	})
	require.NoError(t, err)

	_, err = f.uc.End(ctx, sim.ID)
	require.NoError(t, err)

	_, err = f.uc.End(ctx, sim.ID)
	require.ErrorIs(t, err, entity.ErrSimulationCompleted)
}

func TestEnd_Unknown(t *testing.T) {
	f := newSimFixture()

	_, err := f.uc.End(context.Background(), "missing")
	require.ErrorIs(t, err, entity.ErrSimulationNotFound)
}
