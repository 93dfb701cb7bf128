package simulation

import (
	"context"

	"github.com/pitchperfect/pitch-backend/internal/entity"
)

type SimulationUsecase interface {
	Start(ctx context.Context, req *entity.StartSimulationRequest) (*entity.Simulation, []*entity.SimulationTurn, error)
	Get(ctx context.Context, simulationID string) (*entity.Simulation, []*entity.SimulationTurn, error)
	SubmitTurn(ctx context.Context, simulationID, content string) (*entity.SimulationTurn, error)
	SubmitVoiceTurn(ctx context.Context, simulationID string, audio []byte, filename string) (*entity.SimulationTurn, error)
	End(ctx context.Context, simulationID string) (*entity.Simulation, error)
}
