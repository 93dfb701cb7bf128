package entity

import (
	"fmt"
	"time"
)

type SimulationStatus string

const (
	SimulationStatusInactive  SimulationStatus = "INACTIVE"
	SimulationStatusActive    SimulationStatus = "ACTIVE"
	SimulationStatusCompleted SimulationStatus = "COMPLETED"
)

type SimulationKind string

const (
	SimulationKindInterview SimulationKind = "INTERVIEW"
	SimulationKindSales     SimulationKind = "SALES"
)

func (k SimulationKind) Validate() error {
	switch k {
	case SimulationKindInterview, SimulationKindSales:
		return nil
	default:
		return fmt.Errorf("%w: unknown simulation kind %q", ErrInvalidParameter, string(k))
	}
}

type TurnSpeaker string

const (
	SpeakerUser        TurnSpeaker = "USER"
	SpeakerCounterpart TurnSpeaker = "COUNTERPART"
)

// SimulationTurn is one exchange in the conversation loop. Turn numbers
// are strictly increasing and the list is append-only while the
// simulation is active.
type SimulationTurn struct {
	ID              string      `json:"turn_id"`
	SimulationID    string      `json:"simulation_id"`
	TurnNumber      int         `json:"turn_number"`
	Speaker         TurnSpeaker `json:"speaker"`
	Content         string      `json:"content"`
	Assessment      *string     `json:"assessment,omitempty"`
	IsFinalQuestion bool        `json:"is_final_question,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// SimulationScenario is the context sent with every counterpart-turn
// request so the counterpart stays coherent across the session.
type SimulationScenario struct {
	Kind         SimulationKind `json:"kind"`
	Role         string         `json:"role"`
	Requirements []string       `json:"requirements,omitempty"`
	KnownGaps    []string       `json:"known_gaps,omitempty"`
}

type SimulationScore struct {
	Overall      int      `json:"overall"`
	Strengths    []string `json:"strengths,omitempty"`
	Improvements []string `json:"improvements,omitempty"`
	Summary      string   `json:"summary"`
}

type Simulation struct {
	ID              string             `json:"simulation_id"`
	UserID          string             `json:"user_id"`
	Status          SimulationStatus   `json:"status"`
	Scenario        SimulationScenario `json:"scenario"`
	DurationSeconds int                `json:"duration_seconds"`
	Score           *SimulationScore   `json:"score,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	CompletedAt     *time.Time         `json:"completed_at,omitempty"`
}
