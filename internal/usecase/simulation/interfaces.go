package simulation

import (
	"context"

	"github.com/pitchperfect/pitch-backend/internal/entity"
)

type SimulationRepository interface {
	Create(ctx context.Context, sim *entity.Simulation) error
	Get(ctx context.Context, simulationID string) (*entity.Simulation, error)
	Complete(ctx context.Context, sim *entity.Simulation) error
	AppendTurn(ctx context.Context, turn *entity.SimulationTurn) error
	ListTurns(ctx context.Context, simulationID string) ([]*entity.SimulationTurn, error)
}

type GenerationConnector interface {
	NextCounterpartTurn(ctx context.Context, req *entity.CounterpartTurnRequest) (*entity.CounterpartTurnResponse, error)
	ScoreSimulation(ctx context.Context, req *entity.ScoreSimulationRequest) (*entity.SimulationScore, error)
}

type ASRConnector interface {
	TranscribeBytes(ctx context.Context, audio []byte, filename string) (*entity.ASRTranscribeResponse, error)
}
