package suggestion

import (
	"context"
	"time"

	"github.com/pitchperfect/pitch-backend/internal/entity"
)

type SuggestionUsecase interface {
	Get(ctx context.Context, userID, suggestionType string) (*entity.SuggestionBatch, error)
	Regenerate(ctx context.Context, req *entity.RegenerateRequest) (*entity.SuggestionBatch, time.Duration, error)
	Select(ctx context.Context, req *entity.SelectSuggestionRequest) (*entity.SuggestionBatch, error)
}
