package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPrefNotFound is returned when a user has no stored value for a key.
var ErrPrefNotFound = errors.New("preference not found")

type PrefsRepository struct {
	pool *pgxpool.Pool
}

func NewPrefsRepository(pool *pgxpool.Pool) *PrefsRepository {
	return &PrefsRepository{pool: pool}
}

func (r *PrefsRepository) Get(ctx context.Context, userID, key string) ([]byte, error) {
	var value []byte

	err := r.pool.QueryRow(ctx, `
		SELECT value FROM user_prefs WHERE user_id = $1 AND key = $2`,
		userID, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPrefNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query preference %q: %w", key, err)
	}

	return value, nil
}

func (r *PrefsRepository) Set(ctx context.Context, userID, key string, value []byte) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_prefs (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, key) DO UPDATE SET value = $3, updated_at = now()`,
		userID, key, value,
	)
	if err != nil {
		return fmt.Errorf("upsert preference %q: %w", key, err)
	}

	return nil
}

func (r *PrefsRepository) Delete(ctx context.Context, userID, key string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM user_prefs WHERE user_id = $1 AND key = $2`,
		userID, key,
	)
	if err != nil {
		return fmt.Errorf("delete preference %q: %w", key, err)
	}

	return nil
}
