package survey

import (
	"context"
	"testing"

	"github.com/pitchperfect/pitch-backend/internal/config"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSurveyRepo struct {
	responses []*entity.SurveyResponse
	createErr error
}

func (m *mockSurveyRepo) CreateResponse(ctx context.Context, response *entity.SurveyResponse) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.responses = append(m.responses, response)
	return nil
}

type mockPrefs struct {
	states map[string]*entity.SurveyState
	stats  map[string]entity.SurveyTriggerStats
}

func newMockPrefs() *mockPrefs {
	return &mockPrefs{
		states: map[string]*entity.SurveyState{},
		stats:  map[string]entity.SurveyTriggerStats{},
	}
}

func (m *mockPrefs) SurveyState(ctx context.Context, userID string) *entity.SurveyState {
	return m.states[userID]
}

func (m *mockPrefs) SaveSurveyState(ctx context.Context, userID string, state *entity.SurveyState) error {
	m.states[userID] = state
	return nil
}

func (m *mockPrefs) ClearSurveyState(ctx context.Context, userID string) error {
	delete(m.states, userID)
	return nil
}

func (m *mockPrefs) SurveyStats(ctx context.Context, userID string) entity.SurveyTriggerStats {
	return m.stats[userID]
}

func (m *mockPrefs) SaveSurveyStats(ctx context.Context, userID string, stats entity.SurveyTriggerStats) error {
	m.stats[userID] = stats
	return nil
}

func newTestUsecase(repo *mockSurveyRepo, prefs *mockPrefs) *Usecase {
	cfg := &config.Config{
		SurveyCfg: config.SurveyConfig{
			QuickSessionSeconds:       300,
			ComprehensiveCompleted:    10,
			ComprehensiveAbandonedRun: 3,
		},
	}
	return NewUsecase(repo, prefs, cfg, zap.NewNop())
}

func scale(n float64) entity.SurveyAnswer {
	return entity.SurveyAnswer{Number: &n}
}

func TestGetSurvey(t *testing.T) {
	uc := newTestUsecase(&mockSurveyRepo{}, newMockPrefs())

	survey, err := uc.GetSurvey(context.Background(), "quick-v1")
	require.NoError(t, err)
	require.Equal(t, entity.SurveyKindQuick, survey.Kind)

	_, err = uc.GetSurvey(context.Background(), "missing")
	require.ErrorIs(t, err, entity.ErrSurveyNotFound)
}

func TestAnswer_AdvancesThroughVisibleSet(t *testing.T) {
	prefs := newMockPrefs()
	uc := newTestUsecase(&mockSurveyRepo{}, prefs)
	ctx := context.Background()

	progress, err := uc.Answer(ctx, "quick-v1", &entity.SurveyAnswerRequest{
		UserID:     "user-1",
		QuestionID: "satisfaction",
		Answer:     scale(4),
	})
	require.NoError(t, err)
	require.Equal(t, 1, progress.CurrentIndex)
	require.Equal(t, 1, progress.Answered)
	require.Equal(t, 50, progress.Progress)

	// Answering "no" reveals the blocker question.
	progress, err = uc.Answer(ctx, "quick-v1", &entity.SurveyAnswerRequest{
		UserID:     "user-1",
		QuestionID: "would_recommend",
		Answer:     entity.SurveyAnswer{Selected: []string{"no"}},
	})
	require.NoError(t, err)
	require.Len(t, progress.Visible, 3)
	require.Equal(t, 2, progress.CurrentIndex)
	require.Equal(t, 66, progress.Progress)
}

func TestAnswer_HiddenQuestionRejected(t *testing.T) {
	uc := newTestUsecase(&mockSurveyRepo{}, newMockPrefs())

	_, err := uc.Answer(context.Background(), "quick-v1", &entity.SurveyAnswerRequest{
		UserID:     "user-1",
		QuestionID: "recommend_blocker",
		Answer:     entity.SurveyAnswer{Text: "too pricey"},
	})
	require.ErrorIs(t, err, entity.ErrQuestionHidden)
}

func TestAnswer_UnknownQuestion(t *testing.T) {
	uc := newTestUsecase(&mockSurveyRepo{}, newMockPrefs())

	_, err := uc.Answer(context.Background(), "quick-v1", &entity.SurveyAnswerRequest{
		UserID:     "user-1",
		QuestionID: "nonexistent",
		Answer:     entity.SurveyAnswer{Text: "x"},
	})
	require.ErrorIs(t, err, entity.ErrQuestionNotFound)
}

func TestAnswer_ShapeValidation(t *testing.T) {
	uc := newTestUsecase(&mockSurveyRepo{}, newMockPrefs())
	ctx := context.Background()

	// Scale question answered with text.
	_, err := uc.Answer(ctx, "quick-v1", &entity.SurveyAnswerRequest{
		UserID:     "user-1",
		QuestionID: "satisfaction",
		Answer:     entity.SurveyAnswer{Text: "great"},
	})
	require.ErrorIs(t, err, entity.ErrInvalidAnswerType)

	// Single-select with two values.
	_, err = uc.Answer(ctx, "quick-v1", &entity.SurveyAnswerRequest{
		UserID:     "user-1",
		QuestionID: "would_recommend",
		Answer:     entity.SurveyAnswer{Selected: []string{"yes", "no"}},
	})
	require.ErrorIs(t, err, entity.ErrInvalidAnswerType)
}

func TestAnswer_ChangingGateShrinksVisibleSetAndClampsIndex(t *testing.T) {
	prefs := newMockPrefs()
	uc := newTestUsecase(&mockSurveyRepo{}, prefs)
	ctx := context.Background()

	_, err := uc.Answer(ctx, "quick-v1", &entity.SurveyAnswerRequest{
		UserID:     "user-1",
		QuestionID: "would_recommend",
		Answer:     entity.SurveyAnswer{Selected: []string{"no"}},
	})
	require.NoError(t, err)

	// Flip the gate back to "yes": blocker disappears, index stays in range.
	progress, err := uc.Answer(ctx, "quick-v1", &entity.SurveyAnswerRequest{
		UserID:     "user-1",
		QuestionID: "would_recommend",
		Answer:     entity.SurveyAnswer{Selected: []string{"yes"}},
	})
	require.NoError(t, err)
	require.Len(t, progress.Visible, 2)
	require.Less(t, progress.CurrentIndex, len(progress.Visible))
}

func TestSubmit_PersistsResponseAndClearsState(t *testing.T) {
	repo := &mockSurveyRepo{}
	prefs := newMockPrefs()
	uc := newTestUsecase(repo, prefs)
	ctx := context.Background()

	answer := func(questionID string, a entity.SurveyAnswer) {
		_, err := uc.Answer(ctx, "quick-v1", &entity.SurveyAnswerRequest{
			UserID:     "user-1",
			QuestionID: questionID,
			Answer:     a,
		})
		require.NoError(t, err)
	}

	answer("satisfaction", scale(3))
	answer("would_recommend", entity.SurveyAnswer{Selected: []string{"maybe"}})
	answer("recommend_blocker", entity.SurveyAnswer{Text: "needs more templates"})

	response, err := uc.Submit(ctx, "user-1", "quick-v1")
	require.NoError(t, err)
	require.Equal(t, entity.SurveyKindQuick, response.Kind)
	require.Len(t, response.Answers, 3)
	require.Len(t, repo.responses, 1)

	require.Nil(t, prefs.SurveyState(ctx, "user-1"), "in-progress state is cleared on submit")
	require.True(t, prefs.SurveyStats(ctx, "user-1").QuickCompleted)
}

func TestSubmit_DropsAnswersToHiddenQuestions(t *testing.T) {
	repo := &mockSurveyRepo{}
	prefs := newMockPrefs()
	uc := newTestUsecase(repo, prefs)
	ctx := context.Background()

	// Answer the blocker while visible, then flip the gate so it hides.
	_, err := uc.Answer(ctx, "quick-v1", &entity.SurveyAnswerRequest{
		UserID:     "user-1",
		QuestionID: "would_recommend",
		Answer:     entity.SurveyAnswer{Selected: []string{"no"}},
	})
	require.NoError(t, err)
	_, err = uc.Answer(ctx, "quick-v1", &entity.SurveyAnswerRequest{
		UserID:     "user-1",
		QuestionID: "recommend_blocker",
		Answer:     entity.SurveyAnswer{Text: "too slow"},
	})
	require.NoError(t, err)
	_, err = uc.Answer(ctx, "quick-v1", &entity.SurveyAnswerRequest{
		UserID:     "user-1",
		QuestionID: "would_recommend",
		Answer:     entity.SurveyAnswer{Selected: []string{"yes"}},
	})
	require.NoError(t, err)

	response, err := uc.Submit(ctx, "user-1", "quick-v1")
	require.NoError(t, err)
	require.NotContains(t, response.Answers, "recommend_blocker")
}

func TestSubmit_LiftsFrictionTags(t *testing.T) {
	repo := &mockSurveyRepo{}
	prefs := newMockPrefs()
	uc := newTestUsecase(repo, prefs)
	ctx := context.Background()

	_, err := uc.Answer(ctx, "comprehensive-v1", &entity.SurveyAnswerRequest{
		UserID:     "user-1",
		QuestionID: "friction_tags",
		Answer:     entity.SurveyAnswer{Selected: []string{"slow_generation", "pricing"}},
	})
	require.NoError(t, err)

	response, err := uc.Submit(ctx, "user-1", "comprehensive-v1")
	require.NoError(t, err)
	require.Equal(t, []string{"slow_generation", "pricing"}, response.FrictionTags)
	require.True(t, prefs.SurveyStats(ctx, "user-1").ComprehensiveComplete)
}

func TestSubmit_NoStateForSurvey(t *testing.T) {
	uc := newTestUsecase(&mockSurveyRepo{}, newMockPrefs())

	_, err := uc.Submit(context.Background(), "user-1", "quick-v1")
	require.ErrorIs(t, err, entity.ErrSurveyNotFound)
}

func TestSessionEvent_QuickTriggeredByLongCompletedSession(t *testing.T) {
	prefs := newMockPrefs()
	uc := newTestUsecase(&mockSurveyRepo{}, prefs)

	offer, err := uc.SessionEvent(context.Background(), &entity.SessionEventRequest{
		UserID:          "user-1",
		Outcome:         entity.SessionOutcomeCompleted,
		DurationSeconds: 400,
	})
	require.NoError(t, err)
	require.True(t, offer.Offer)
	require.Equal(t, entity.SurveyKindQuick, *offer.Kind)
}

func TestSessionEvent_ShortSessionDoesNotTrigger(t *testing.T) {
	uc := newTestUsecase(&mockSurveyRepo{}, newMockPrefs())

	offer, err := uc.SessionEvent(context.Background(), &entity.SessionEventRequest{
		UserID:          "user-1",
		Outcome:         entity.SessionOutcomeCompleted,
		DurationSeconds: 120,
	})
	require.NoError(t, err)
	require.False(t, offer.Offer)
}

func TestSessionEvent_QuickOfferedOnlyOnce(t *testing.T) {
	prefs := newMockPrefs()
	prefs.stats["user-1"] = entity.SurveyTriggerStats{QuickCompleted: true}
	uc := newTestUsecase(&mockSurveyRepo{}, prefs)

	offer, err := uc.SessionEvent(context.Background(), &entity.SessionEventRequest{
		UserID:          "user-1",
		Outcome:         entity.SessionOutcomeCompleted,
		DurationSeconds: 400,
	})
	require.NoError(t, err)
	require.False(t, offer.Offer)
}

func TestSessionEvent_AbandonedRunTriggersComprehensive(t *testing.T) {
	prefs := newMockPrefs()
	uc := newTestUsecase(&mockSurveyRepo{}, prefs)
	ctx := context.Background()

	req := &entity.SessionEventRequest{UserID: "user-1", Outcome: entity.SessionOutcomeAbandoned}

	for i := 0; i < 2; i++ {
		offer, err := uc.SessionEvent(ctx, req)
		require.NoError(t, err)
		require.False(t, offer.Offer)
	}

	offer, err := uc.SessionEvent(ctx, req)
	require.NoError(t, err)
	require.True(t, offer.Offer)
	require.Equal(t, entity.SurveyKindComprehensive, *offer.Kind)
}

func TestSessionEvent_CompletedSessionResetsAbandonedRun(t *testing.T) {
	prefs := newMockPrefs()
	prefs.stats["user-1"] = entity.SurveyTriggerStats{ConsecutiveAbandoned: 2, QuickCompleted: true}
	uc := newTestUsecase(&mockSurveyRepo{}, prefs)
	ctx := context.Background()

	_, err := uc.SessionEvent(ctx, &entity.SessionEventRequest{
		UserID:  "user-1",
		Outcome: entity.SessionOutcomeCompleted,
	})
	require.NoError(t, err)
	require.Equal(t, 0, prefs.stats["user-1"].ConsecutiveAbandoned)
}

func TestSessionEvent_ComprehensiveByCompletedSessions(t *testing.T) {
	prefs := newMockPrefs()
	prefs.stats["user-1"] = entity.SurveyTriggerStats{CompletedSessions: 9, QuickCompleted: true}
	uc := newTestUsecase(&mockSurveyRepo{}, prefs)

	offer, err := uc.SessionEvent(context.Background(), &entity.SessionEventRequest{
		UserID:  "user-1",
		Outcome: entity.SessionOutcomeCompleted,
	})
	require.NoError(t, err)
	require.True(t, offer.Offer)
	require.Equal(t, entity.SurveyKindComprehensive, *offer.Kind)
}

func TestSessionEvent_InvalidOutcome(t *testing.T) {
	uc := newTestUsecase(&mockSurveyRepo{}, newMockPrefs())

	_, err := uc.SessionEvent(context.Background(), &entity.SessionEventRequest{
		UserID:  "user-1",
		Outcome: "PAUSED",
	})
	require.ErrorIs(t, err, entity.ErrInvalidParameter)
}
