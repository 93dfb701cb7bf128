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

type PitchRepository struct {
	pool *pgxpool.Pool
}

func NewPitchRepository(pool *pgxpool.Pool) *PitchRepository {
	return &PitchRepository{pool: pool}
}

func (r *PitchRepository) Create(ctx context.Context, pitch *entity.Pitch) error {
	blocks, err := json.Marshal(pitch.Blocks)
	if err != nil {
		return fmt.Errorf("marshal pitch blocks: %w", err)
	}

	bullets, err := json.Marshal(pitch.BulletPoints)
	if err != nil {
		return fmt.Errorf("marshal bullet points: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO pitches (id, user_id, wizard_session_id, title, hook_style, duration_minutes,
			target_word_count, actual_word_count, blocks, bullet_points, full_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		pitch.ID, pitch.UserID, pitch.WizardSessionID, pitch.Title, string(pitch.HookStyle),
		pitch.DurationMinutes, pitch.TargetWordCount, pitch.ActualWordCount,
		blocks, bullets, pitch.FullText, pitch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pitch: %w", err)
	}

	return nil
}

func (r *PitchRepository) Get(ctx context.Context, pitchID string) (*entity.Pitch, error) {
	id, err := uuid.Parse(pitchID)
	if err != nil {
		return nil, entity.ErrPitchNotFound
	}

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, wizard_session_id, title, hook_style, duration_minutes,
			target_word_count, actual_word_count, blocks, bullet_points, full_text, created_at
		FROM pitches WHERE id = $1`, id)

	var (
		pitch     entity.Pitch
		hookStyle string
		blocks    []byte
		bullets   []byte
	)

	err = row.Scan(
		&pitch.ID, &pitch.UserID, &pitch.WizardSessionID, &pitch.Title, &hookStyle,
		&pitch.DurationMinutes, &pitch.TargetWordCount, &pitch.ActualWordCount,
		&blocks, &bullets, &pitch.FullText, &pitch.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrPitchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan pitch: %w", err)
	}

	pitch.HookStyle = entity.HookStyle(hookStyle)
	if err := json.Unmarshal(blocks, &pitch.Blocks); err != nil {
		return nil, fmt.Errorf("unmarshal pitch blocks: %w", err)
	}
	if err := json.Unmarshal(bullets, &pitch.BulletPoints); err != nil {
		return nil, fmt.Errorf("unmarshal bullet points: %w", err)
	}

	return &pitch, nil
}

// UpdateScript replaces the current script blocks and derived fields.
func (r *PitchRepository) UpdateScript(ctx context.Context, pitch *entity.Pitch) error {
	blocks, err := json.Marshal(pitch.Blocks)
	if err != nil {
		return fmt.Errorf("marshal pitch blocks: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE pitches SET blocks = $2, full_text = $3, actual_word_count = $4
		WHERE id = $1`,
		pitch.ID, blocks, pitch.FullText, pitch.ActualWordCount,
	)
	if err != nil {
		return fmt.Errorf("update pitch script: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrPitchNotFound
	}

	return nil
}

type VersionRepository struct {
	pool *pgxpool.Pool
}

func NewVersionRepository(pool *pgxpool.Pool) *VersionRepository {
	return &VersionRepository{pool: pool}
}

func (r *VersionRepository) Create(ctx context.Context, version *entity.ScriptVersion) error {
	blocks, err := json.Marshal(version.Blocks)
	if err != nil {
		return fmt.Errorf("marshal version blocks: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO script_versions (id, pitch_id, name, blocks, word_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		version.ID, version.PitchID, version.Name, blocks, version.WordCount, version.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert script version: %w", err)
	}

	return nil
}

func (r *VersionRepository) Get(ctx context.Context, versionID string) (*entity.ScriptVersion, error) {
	id, err := uuid.Parse(versionID)
	if err != nil {
		return nil, entity.ErrVersionNotFound
	}

	row := r.pool.QueryRow(ctx, `
		SELECT id, pitch_id, name, blocks, word_count, created_at
		FROM script_versions WHERE id = $1`, id)

	version, err := scanVersion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrVersionNotFound
	}

	return version, err
}

func (r *VersionRepository) ListByPitch(ctx context.Context, pitchID string) ([]*entity.ScriptVersion, error) {
	id, err := uuid.Parse(pitchID)
	if err != nil {
		return nil, entity.ErrPitchNotFound
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, pitch_id, name, blocks, word_count, created_at
		FROM script_versions WHERE pitch_id = $1
		ORDER BY created_at DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("query script versions: %w", err)
	}
	defer rows.Close()

	var versions []*entity.ScriptVersion
	for rows.Next() {
		version, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, version)
	}

	return versions, rows.Err()
}

func scanVersion(row pgx.Row) (*entity.ScriptVersion, error) {
	var (
		version entity.ScriptVersion
		blocks  []byte
	)

	err := row.Scan(
		&version.ID, &version.PitchID, &version.Name,
		&blocks, &version.WordCount, &version.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan script version: %w", err)
	}

	if err := json.Unmarshal(blocks, &version.Blocks); err != nil {
		return nil, fmt.Errorf("unmarshal version blocks: %w", err)
	}

	return &version, nil
}
