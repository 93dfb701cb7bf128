package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pitchperfect/pitch-backend/internal/entity"
)

type SurveyRepository struct {
	pool *pgxpool.Pool
}

func NewSurveyRepository(pool *pgxpool.Pool) *SurveyRepository {
	return &SurveyRepository{pool: pool}
}

func (r *SurveyRepository) CreateResponse(ctx context.Context, response *entity.SurveyResponse) error {
	answers, err := json.Marshal(response.Answers)
	if err != nil {
		return fmt.Errorf("marshal survey answers: %w", err)
	}

	tags, err := json.Marshal(response.FrictionTags)
	if err != nil {
		return fmt.Errorf("marshal friction tags: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO survey_responses (id, user_id, survey_id, kind, answers, friction_tags, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		response.ID, response.UserID, response.SurveyID, string(response.Kind),
		answers, tags, response.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert survey response: %w", err)
	}

	return nil
}

func (r *SurveyRepository) ListResponses(ctx context.Context, userID string) ([]*entity.SurveyResponse, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, survey_id, kind, answers, friction_tags, submitted_at
		FROM survey_responses WHERE user_id = $1
		ORDER BY submitted_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query survey responses: %w", err)
	}
	defer rows.Close()

	var responses []*entity.SurveyResponse
	for rows.Next() {
		var (
			response entity.SurveyResponse
			kind     string
			answers  []byte
			tags     []byte
		)

		err := rows.Scan(
			&response.ID, &response.UserID, &response.SurveyID, &kind,
			&answers, &tags, &response.SubmittedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan survey response: %w", err)
		}

		response.Kind = entity.SurveyKind(kind)
		if err := json.Unmarshal(answers, &response.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal survey answers: %w", err)
		}
		if err := json.Unmarshal(tags, &response.FrictionTags); err != nil {
			return nil, fmt.Errorf("unmarshal friction tags: %w", err)
		}

		responses = append(responses, &response)
	}

	return responses, rows.Err()
}
