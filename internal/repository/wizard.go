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

type WizardRepository struct {
	pool *pgxpool.Pool
}

func NewWizardRepository(pool *pgxpool.Pool) *WizardRepository {
	return &WizardRepository{pool: pool}
}

func (r *WizardRepository) Create(ctx context.Context, session *entity.WizardSession) error {
	answers, err := json.Marshal(session.Answers)
	if err != nil {
		return fmt.Errorf("marshal wizard answers: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO wizard_sessions (id, user_id, status, answers, pitch_id, error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		session.ID, session.UserID, string(session.Status), answers,
		session.PitchID, session.Error, session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wizard session: %w", err)
	}

	return nil
}

func (r *WizardRepository) Get(ctx context.Context, sessionID string) (*entity.WizardSession, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, entity.ErrWizardNotFound
	}

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, status, answers, pitch_id, error, created_at, updated_at
		FROM wizard_sessions WHERE id = $1`, id)

	return scanWizardSession(row)
}

func (r *WizardRepository) Update(ctx context.Context, session *entity.WizardSession) error {
	answers, err := json.Marshal(session.Answers)
	if err != nil {
		return fmt.Errorf("marshal wizard answers: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE wizard_sessions
		SET status = $2, answers = $3, pitch_id = $4, error = $5, updated_at = $6
		WHERE id = $1`,
		session.ID, string(session.Status), answers,
		session.PitchID, session.Error, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update wizard session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrWizardNotFound
	}

	return nil
}

// UpdateStatusIf transitions the session status only when the stored status
// still matches the expected one. Returns false when the guard did not hold.
func (r *WizardRepository) UpdateStatusIf(ctx context.Context, sessionID string, from, to entity.WizardStatus) (bool, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return false, entity.ErrWizardNotFound
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE wizard_sessions SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`,
		id, string(from), string(to),
	)
	if err != nil {
		return false, fmt.Errorf("update wizard status: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func scanWizardSession(row pgx.Row) (*entity.WizardSession, error) {
	var (
		session entity.WizardSession
		status  string
		answers []byte
	)

	err := row.Scan(
		&session.ID, &session.UserID, &status, &answers,
		&session.PitchID, &session.Error, &session.CreatedAt, &session.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrWizardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan wizard session: %w", err)
	}

	session.Status = entity.WizardStatus(status)
	if err := json.Unmarshal(answers, &session.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal wizard answers: %w", err)
	}

	return &session, nil
}
