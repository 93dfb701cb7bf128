package suggestion

import (
	"context"

	"github.com/pitchperfect/pitch-backend/internal/entity"
)

type GenerationConnector interface {
	GenerateSuggestions(ctx context.Context, req *entity.GenerateSuggestionsRequest) (*entity.GenerateSuggestionsResponse, error)
}
