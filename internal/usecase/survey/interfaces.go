package survey

import (
	"context"

	"github.com/pitchperfect/pitch-backend/internal/entity"
)

type SurveyRepository interface {
	CreateResponse(ctx context.Context, response *entity.SurveyResponse) error
}

// PrefsStore persists the in-progress answer sheet and the trigger
// counters per user.
type PrefsStore interface {
	SurveyState(ctx context.Context, userID string) *entity.SurveyState
	SaveSurveyState(ctx context.Context, userID string, state *entity.SurveyState) error
	ClearSurveyState(ctx context.Context, userID string) error
	SurveyStats(ctx context.Context, userID string) entity.SurveyTriggerStats
	SaveSurveyStats(ctx context.Context, userID string, stats entity.SurveyTriggerStats) error
}
