package suggestion

import (
	"context"
	"slices"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pitchperfect/pitch-backend/internal/config"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"github.com/pitchperfect/pitch-backend/internal/pkg/ratelimit"
	"go.uber.org/zap"
)

const batchTTL = 24 * time.Hour

// Usecase serves AI suggestion batches for wizard fields. Explicit
// regenerations are rate limited per user and type; transient
// generation failures are retried with exponential backoff and, once
// retries are exhausted, answered from a curated fallback list so the
// user is never left without options.
type Usecase struct {
	generator GenerationConnector
	cfg       config.SuggestionConfig
	fallback  map[string][]string
	batches   *gocache.Cache
	windows   *gocache.Cache
	logger    *zap.Logger
}

func NewUsecase(
	generator GenerationConnector,
	cfg *config.Config,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		generator: generator,
		cfg:       cfg.SuggestionCfg,
		fallback:  cfg.FallbackSuggestions,
		batches:   gocache.New(batchTTL, time.Hour),
		windows:   gocache.New(batchTTL, time.Hour),
		logger:    logger,
	}
}

// Get returns the user's current batch for a suggestion type.
func (u *Usecase) Get(ctx context.Context, userID, suggestionType string) (*entity.SuggestionBatch, error) {
	batch, ok := u.batch(userID, suggestionType)
	if !ok {
		return nil, entity.ErrBatchNotFound
	}

	return batch, nil
}

// Regenerate replaces the current batch with fresh suggestions. On
// rate limit the remaining cooldown is returned alongside
// ErrRateLimited. Selections made on the previous batch are cleared
// only when a new batch actually replaces it.
func (u *Usecase) Regenerate(ctx context.Context, req *entity.RegenerateRequest) (*entity.SuggestionBatch, time.Duration, error) {
	window := u.window(req.UserID, req.Type)

	if !window.TryAcquire() {
		retryAfter := window.CooldownRemaining()
		if retryAfter == 0 {
			retryAfter = u.cfg.Cooldown
		}

		ctxzap.Info(ctx, "regeneration rate limited",
			zap.String("type", req.Type),
			zap.Duration("retry_after", retryAfter),
		)

		return nil, retryAfter, entity.ErrRateLimited
	}

	suggestions, usedFallback := u.generate(ctx, req)

	batch := &entity.SuggestionBatch{
		Type:        req.Type,
		Suggestions: suggestions,
		Fallback:    usedFallback,
		GeneratedAt: time.Now(),
	}

	u.batches.Set(batchKey(req.UserID, req.Type), batch, batchTTL)

	return batch, 0, nil
}

// generate calls the generation service with retries. When every
// attempt fails it falls back to the curated list for the type.
func (u *Usecase) generate(ctx context.Context, req *entity.RegenerateRequest) ([]string, bool) {
	resp, err := retry.DoWithData(
		func() (*entity.GenerateSuggestionsResponse, error) {
			return u.generator.GenerateSuggestions(ctx, &entity.GenerateSuggestionsRequest{
				Type:    req.Type,
				Idea:    req.Idea,
				Context: req.Context,
			})
		},
		retry.Attempts(u.cfg.MaxRetries),
		retry.DelayType(u.cfg.Backoff.DelayType),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		ctxzap.Warn(ctx, "suggestion generation exhausted retries, using fallback",
			zap.String("type", req.Type),
			zap.Error(err),
		)

		return u.fallbackFor(req.Type), true
	}

	return resp.Suggestions, false
}

// Select marks one suggestion of the current batch as chosen. The
// suggestion must belong to the batch the user is actually looking at.
func (u *Usecase) Select(ctx context.Context, req *entity.SelectSuggestionRequest) (*entity.SuggestionBatch, error) {
	batch, ok := u.batch(req.UserID, req.Type)
	if !ok {
		return nil, entity.ErrBatchNotFound
	}

	if !slices.Contains(batch.Suggestions, req.Suggestion) {
		return nil, entity.ErrUnknownSuggestion
	}

	if !slices.Contains(batch.Selected, req.Suggestion) {
		batch.Selected = append(batch.Selected, req.Suggestion)
	}

	u.batches.Set(batchKey(req.UserID, req.Type), batch, batchTTL)

	return batch, nil
}

func (u *Usecase) fallbackFor(suggestionType string) []string {
	if list, ok := u.fallback[suggestionType]; ok {
		return list
	}

	return nil
}

func (u *Usecase) batch(userID, suggestionType string) (*entity.SuggestionBatch, bool) {
	raw, ok := u.batches.Get(batchKey(userID, suggestionType))
	if !ok {
		return nil, false
	}

	batch, ok := raw.(*entity.SuggestionBatch)

	return batch, ok
}

// window returns the per-user, per-type rate limit window, creating it
// on first use.
func (u *Usecase) window(userID, suggestionType string) *ratelimit.Window {
	key := batchKey(userID, suggestionType)

	if raw, ok := u.windows.Get(key); ok {
		if window, ok := raw.(*ratelimit.Window); ok {
			return window
		}
	}

	window := ratelimit.NewWindow(u.cfg.WindowLimit, u.cfg.Window, u.cfg.Cooldown)
	u.windows.Set(key, window, batchTTL)

	return window
}

func batchKey(userID, suggestionType string) string {
	return userID + ":" + suggestionType
}
