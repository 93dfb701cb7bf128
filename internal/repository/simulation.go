package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pitchperfect/pitch-backend/internal/entity"
)

type SimulationRepository struct {
	pool *pgxpool.Pool
}

func NewSimulationRepository(pool *pgxpool.Pool) *SimulationRepository {
	return &SimulationRepository{pool: pool}
}

func (r *SimulationRepository) Create(ctx context.Context, sim *entity.Simulation) error {
	scenario, err := json.Marshal(sim.Scenario)
	if err != nil {
		return fmt.Errorf("marshal simulation scenario: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO simulations (id, user_id, status, scenario, duration_seconds, score, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, NULL, $6, NULL)`,
		sim.ID, sim.UserID, string(sim.Status), scenario, sim.DurationSeconds, sim.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert simulation: %w", err)
	}

	return nil
}

func (r *SimulationRepository) Get(ctx context.Context, simulationID string) (*entity.Simulation, error) {
	id, err := uuid.Parse(simulationID)
	if err != nil {
		return nil, entity.ErrSimulationNotFound
	}

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, status, scenario, duration_seconds, score, created_at, completed_at
		FROM simulations WHERE id = $1`, id)

	var (
		sim      entity.Simulation
		status   string
		scenario []byte
		score    []byte
	)

	err = row.Scan(
		&sim.ID, &sim.UserID, &status, &scenario,
		&sim.DurationSeconds, &score, &sim.CreatedAt, &sim.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrSimulationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan simulation: %w", err)
	}

	sim.Status = entity.SimulationStatus(status)
	if err := json.Unmarshal(scenario, &sim.Scenario); err != nil {
		return nil, fmt.Errorf("unmarshal simulation scenario: %w", err)
	}
	if score != nil {
		sim.Score = &entity.SimulationScore{}
		if err := json.Unmarshal(score, sim.Score); err != nil {
			return nil, fmt.Errorf("unmarshal simulation score: %w", err)
		}
	}

	return &sim, nil
}

// Complete marks the simulation completed and stores its final score.
// The status guard keeps a second End call from overwriting the result.
func (r *SimulationRepository) Complete(ctx context.Context, sim *entity.Simulation) error {
	score, err := json.Marshal(sim.Score)
	if err != nil {
		return fmt.Errorf("marshal simulation score: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE simulations
		SET status = $2, duration_seconds = $3, score = $4, completed_at = $5
		WHERE id = $1 AND status = $6`,
		sim.ID, string(entity.SimulationStatusCompleted), sim.DurationSeconds,
		score, sim.CompletedAt, string(entity.SimulationStatusActive),
	)
	if err != nil {
		return fmt.Errorf("complete simulation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrSimulationCompleted
	}

	return nil
}

func (r *SimulationRepository) AppendTurn(ctx context.Context, turn *entity.SimulationTurn) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO simulation_turns (id, simulation_id, turn_number, speaker, content, assessment, is_final_question, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		turn.ID, turn.SimulationID, turn.TurnNumber, string(turn.Speaker),
		turn.Content, turn.Assessment, turn.IsFinalQuestion, turn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert simulation turn: %w", err)
	}

	return nil
}

func (r *SimulationRepository) ListTurns(ctx context.Context, simulationID string) ([]*entity.SimulationTurn, error) {
	id, err := uuid.Parse(simulationID)
	if err != nil {
		return nil, entity.ErrSimulationNotFound
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, simulation_id, turn_number, speaker, content, assessment, is_final_question, created_at
		FROM simulation_turns WHERE simulation_id = $1
		ORDER BY turn_number`, id)
	if err != nil {
		return nil, fmt.Errorf("query simulation turns: %w", err)
	}
	defer rows.Close()

	var turns []*entity.SimulationTurn
	for rows.Next() {
		var (
			turn    entity.SimulationTurn
			speaker string
		)

		err := rows.Scan(
			&turn.ID, &turn.SimulationID, &turn.TurnNumber, &speaker,
			&turn.Content, &turn.Assessment, &turn.IsFinalQuestion, &turn.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan simulation turn: %w", err)
		}

		turn.Speaker = entity.TurnSpeaker(speaker)
		turns = append(turns, &turn)
	}

	return turns, rows.Err()
}
