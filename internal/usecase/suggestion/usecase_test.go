package suggestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pitchperfect/pitch-backend/internal/config"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"github.com/pitchperfect/pitch-backend/internal/pkg/backoff"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type generateResponse struct {
	resp *entity.GenerateSuggestionsResponse
	err  error
}

type mockGenerator struct {
	responses []generateResponse
	calls     []*entity.GenerateSuggestionsRequest
}

func (m *mockGenerator) GenerateSuggestions(ctx context.Context, req *entity.GenerateSuggestionsRequest) (*entity.GenerateSuggestionsResponse, error) {
	m.calls = append(m.calls, req)
	if len(m.responses) == 0 {
		return nil, errors.New("no mock response configured")
	}

	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}

	return resp.resp, resp.err
}

func testConfig(windowLimit int) *config.Config {
	return &config.Config{
		SuggestionCfg: config.SuggestionConfig{
			WindowLimit: windowLimit,
			Window:      time.Minute,
			Cooldown:    30 * time.Second,
			MaxRetries:  3,
			Backoff: backoff.Config{
				Base:           time.Millisecond,
				Cap:            5 * time.Millisecond,
				JitterFraction: 0,
			},
		},
		FallbackSuggestions: map[string][]string{
			"problem": {
				"Existing solutions are too expensive",
				"Manual workflows waste hours",
			},
		},
	}
}

func TestRegenerate_ReturnsFreshBatch(t *testing.T) {
	generator := &mockGenerator{
		responses: []generateResponse{
			{resp: &entity.GenerateSuggestionsResponse{Suggestions: []string{"a", "b", "c"}}},
		},
	}
	uc := NewUsecase(generator, testConfig(5), zap.NewNop())

	batch, retryAfter, err := uc.Regenerate(context.Background(), &entity.RegenerateRequest{
		UserID: "user-1",
		Type:   "problem",
		Idea:   "meal planning app",
	})

	require.NoError(t, err)
	require.Equal(t, time.Duration(0), retryAfter)
	require.Equal(t, []string{"a", "b", "c"}, batch.Suggestions)
	require.False(t, batch.Fallback)
	require.Len(t, generator.calls, 1)
	require.Equal(t, "meal planning app", generator.calls[0].Idea)

	got, err := uc.Get(context.Background(), "user-1", "problem")
	require.NoError(t, err)
	require.Equal(t, batch, got)
}

func TestRegenerate_RateLimited(t *testing.T) {
	generator := &mockGenerator{
		responses: []generateResponse{
			{resp: &entity.GenerateSuggestionsResponse{Suggestions: []string{"a"}}},
		},
	}
	uc := NewUsecase(generator, testConfig(1), zap.NewNop())

	req := &entity.RegenerateRequest{UserID: "user-1", Type: "problem"}

	_, _, err := uc.Regenerate(context.Background(), req)
	require.NoError(t, err)

	batch, retryAfter, err := uc.Regenerate(context.Background(), req)
	require.ErrorIs(t, err, entity.ErrRateLimited)
	require.Nil(t, batch)
	require.Greater(t, retryAfter, time.Duration(0))

	// Only the first call reached the generator.
	require.Len(t, generator.calls, 1)
}

func TestRegenerate_WindowsAreScopedPerUserAndType(t *testing.T) {
	generator := &mockGenerator{
		responses: []generateResponse{
			{resp: &entity.GenerateSuggestionsResponse{Suggestions: []string{"a"}}},
		},
	}
	uc := NewUsecase(generator, testConfig(1), zap.NewNop())

	_, _, err := uc.Regenerate(context.Background(), &entity.RegenerateRequest{UserID: "user-1", Type: "problem"})
	require.NoError(t, err)

	// A different user and a different type each get their own window.
	_, _, err = uc.Regenerate(context.Background(), &entity.RegenerateRequest{UserID: "user-2", Type: "problem"})
	require.NoError(t, err)
	_, _, err = uc.Regenerate(context.Background(), &entity.RegenerateRequest{UserID: "user-1", Type: "hook"})
	require.NoError(t, err)
}

func TestRegenerate_FallbackAfterExhaustedRetries(t *testing.T) {
	generator := &mockGenerator{
		responses: []generateResponse{
			{err: errors.New("generation service unavailable")},
		},
	}
	uc := NewUsecase(generator, testConfig(5), zap.NewNop())

	batch, _, err := uc.Regenerate(context.Background(), &entity.RegenerateRequest{
		UserID: "user-1",
		Type:   "problem",
	})

	require.NoError(t, err, "fallback turns generation failure into a valid batch")
	require.True(t, batch.Fallback)
	require.Equal(t, []string{
		"Existing solutions are too expensive",
		"Manual workflows waste hours",
	}, batch.Suggestions)
	require.Len(t, generator.calls, 3, "each configured retry attempt must hit the generator")
}

func TestRegenerate_ClearsSelections(t *testing.T) {
	generator := &mockGenerator{
		responses: []generateResponse{
			{resp: &entity.GenerateSuggestionsResponse{Suggestions: []string{"a", "b"}}},
			{resp: &entity.GenerateSuggestionsResponse{Suggestions: []string{"c", "d"}}},
		},
	}
	uc := NewUsecase(generator, testConfig(5), zap.NewNop())

	ctx := context.Background()
	_, _, err := uc.Regenerate(ctx, &entity.RegenerateRequest{UserID: "user-1", Type: "problem"})
	require.NoError(t, err)

	_, err = uc.Select(ctx, &entity.SelectSuggestionRequest{UserID: "user-1", Type: "problem", Suggestion: "a"})
	require.NoError(t, err)

	batch, _, err := uc.Regenerate(ctx, &entity.RegenerateRequest{UserID: "user-1", Type: "problem"})
	require.NoError(t, err)
	require.Empty(t, batch.Selected, "a replacing batch starts without selections")
	require.Equal(t, []string{"c", "d"}, batch.Suggestions)
}

func TestSelect_MembershipAndDeduplication(t *testing.T) {
	generator := &mockGenerator{
		responses: []generateResponse{
			{resp: &entity.GenerateSuggestionsResponse{Suggestions: []string{"a", "b"}}},
		},
	}
	uc := NewUsecase(generator, testConfig(5), zap.NewNop())

	ctx := context.Background()
	_, _, err := uc.Regenerate(ctx, &entity.RegenerateRequest{UserID: "user-1", Type: "problem"})
	require.NoError(t, err)

	_, err = uc.Select(ctx, &entity.SelectSuggestionRequest{UserID: "user-1", Type: "problem", Suggestion: "z"})
	require.ErrorIs(t, err, entity.ErrUnknownSuggestion)

	batch, err := uc.Select(ctx, &entity.SelectSuggestionRequest{UserID: "user-1", Type: "problem", Suggestion: "b"})
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, batch.Selected)

	// Selecting the same suggestion again is idempotent.
	batch, err = uc.Select(ctx, &entity.SelectSuggestionRequest{UserID: "user-1", Type: "problem", Suggestion: "b"})
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, batch.Selected)
}

func TestGet_NoBatch(t *testing.T) {
	uc := NewUsecase(&mockGenerator{}, testConfig(5), zap.NewNop())

	_, err := uc.Get(context.Background(), "user-1", "problem")
	require.ErrorIs(t, err, entity.ErrBatchNotFound)
}

func TestSelect_NoBatch(t *testing.T) {
	uc := NewUsecase(&mockGenerator{}, testConfig(5), zap.NewNop())

	_, err := uc.Select(context.Background(), &entity.SelectSuggestionRequest{
		UserID:     "user-1",
		Type:       "problem",
		Suggestion: "a",
	})
	require.ErrorIs(t, err, entity.ErrBatchNotFound)
}
