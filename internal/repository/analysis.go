package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pitchperfect/pitch-backend/internal/entity"
)

type AnalysisRepository struct {
	pool *pgxpool.Pool
}

func NewAnalysisRepository(pool *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

func (r *AnalysisRepository) Create(ctx context.Context, userID string, results *entity.AnalysisResults) error {
	breakdown, err := json.Marshal(results.FillerBreakdown)
	if err != nil {
		return fmt.Errorf("marshal filler breakdown: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO coach_analyses (id, user_id, transcript, pace_wpm, filler_total, filler_breakdown,
			stability_score, posture_score, smile_score, content_coverage, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		results.ID, userID, results.Transcript, results.PaceWPM, results.FillerTotal, breakdown,
		results.StabilityScore, results.PostureScore, results.SmileScore,
		results.ContentCoverage, results.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("insert coach analysis: %w", err)
	}

	return nil
}

func (r *AnalysisRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.AnalysisResults, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, transcript, pace_wpm, filler_total, filler_breakdown,
			stability_score, posture_score, smile_score, content_coverage, processed_at
		FROM coach_analyses WHERE user_id = $1
		ORDER BY processed_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query coach analyses: %w", err)
	}
	defer rows.Close()

	var results []*entity.AnalysisResults
	for rows.Next() {
		var (
			item      entity.AnalysisResults
			breakdown []byte
		)

		err := rows.Scan(
			&item.ID, &item.Transcript, &item.PaceWPM, &item.FillerTotal, &breakdown,
			&item.StabilityScore, &item.PostureScore, &item.SmileScore,
			&item.ContentCoverage, &item.ProcessedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan coach analysis: %w", err)
		}

		if err := json.Unmarshal(breakdown, &item.FillerBreakdown); err != nil {
			return nil, fmt.Errorf("unmarshal filler breakdown: %w", err)
		}

		results = append(results, &item)
	}

	return results, rows.Err()
}
