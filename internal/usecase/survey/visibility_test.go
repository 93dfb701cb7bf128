package survey

import (
	"testing"

	"github.com/pitchperfect/pitch-backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func questionIDs(questions []entity.SurveyQuestion) []string {
	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	return ids
}

func TestVisibleQuestions_ConditionalHiddenByDefault(t *testing.T) {
	visible := VisibleQuestions(&quickSurvey, map[string]entity.SurveyAnswer{})

	require.Equal(t, []string{"satisfaction", "would_recommend"}, questionIDs(visible))
}

func TestVisibleQuestions_GatingAnswerReveals(t *testing.T) {
	answers := map[string]entity.SurveyAnswer{
		"would_recommend": {Selected: []string{"no"}},
	}

	visible := VisibleQuestions(&quickSurvey, answers)

	require.Equal(t, []string{"satisfaction", "would_recommend", "recommend_blocker"}, questionIDs(visible))
}

func TestVisibleQuestions_NonMatchingAnswerKeepsHidden(t *testing.T) {
	answers := map[string]entity.SurveyAnswer{
		"would_recommend": {Selected: []string{"yes"}},
	}

	visible := VisibleQuestions(&quickSurvey, answers)

	require.Equal(t, []string{"satisfaction", "would_recommend"}, questionIDs(visible))
}

func TestVisibleQuestions_MultiSelectIntersection(t *testing.T) {
	answers := map[string]entity.SurveyAnswer{
		"features_used": {Selected: []string{"wizard", "simulator"}},
	}

	visible := VisibleQuestions(&comprehensiveSurvey, answers)

	ids := questionIDs(visible)
	require.Contains(t, ids, "simulator_realism")
	require.NotContains(t, ids, "coach_value")
}

func TestAnswerMatches_TextEquality(t *testing.T) {
	cond := &entity.ShowIf{QuestionID: "q", AnyOf: []string{"maybe", "no"}}

	require.True(t, answerMatches(map[string]entity.SurveyAnswer{"q": {Text: "no"}}, cond))
	require.False(t, answerMatches(map[string]entity.SurveyAnswer{"q": {Text: "yes"}}, cond))
	require.False(t, answerMatches(map[string]entity.SurveyAnswer{}, cond))
}

func TestClampIndex(t *testing.T) {
	require.Equal(t, 0, ClampIndex(0, 0))
	require.Equal(t, 0, ClampIndex(5, 0))
	require.Equal(t, 0, ClampIndex(-1, 3))
	require.Equal(t, 2, ClampIndex(2, 3))
	require.Equal(t, 2, ClampIndex(7, 3), "stale index past the shrunk set clamps to the last question")
}
