package simulation

import "github.com/pitchperfect/pitch-backend/internal/entity"

// toSimulationDTO converts a Simulation and its turns to SimulationDTO
func toSimulationDTO(sim *entity.Simulation, turns []*entity.SimulationTurn) *entity.SimulationDTO {
	dto := &entity.SimulationDTO{
		ID:              sim.ID,
		Status:          sim.Status,
		Scenario:        sim.Scenario,
		Turns:           make([]entity.SimulationTurn, 0, len(turns)),
		DurationSeconds: sim.DurationSeconds,
		Score:           sim.Score,
	}

	for _, turn := range turns {
		dto.Turns = append(dto.Turns, *turn)
	}

	return dto
}
