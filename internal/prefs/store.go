package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"github.com/pitchperfect/pitch-backend/internal/repository"
	"go.uber.org/zap"
)

// Well-known preference keys. Values are stored as JSON blobs so new
// keys need no schema change.
const (
	KeySurveyState  = "survey_state"
	KeySurveyStats  = "survey_stats"
	KeyPromptMode   = "prompt_mode"
	KeyLanguage     = "language"
	KeyCoachConsent = "coach_consent"
)

const cacheTTL = 5 * time.Minute

type Repository interface {
	Get(ctx context.Context, userID, key string) ([]byte, error)
	Set(ctx context.Context, userID, key string, value []byte) error
	Delete(ctx context.Context, userID, key string) error
}

// Store is a per-user key/value preference store with a read-through
// cache. Reads that hit missing or corrupt values fall back to the
// zero value instead of failing: preferences are advisory state and
// must never block a session flow.
type Store struct {
	repo  Repository
	cache *gocache.Cache
}

func NewStore(repo Repository) *Store {
	return &Store{
		repo:  repo,
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}
}

func cacheKey(userID, key string) string {
	return userID + ":" + key
}

// Get unmarshals the stored value for key into out. It returns false
// when no usable value exists, leaving out untouched so the caller's
// defaults apply.
func (s *Store) Get(ctx context.Context, userID, key string, out any) bool {
	ck := cacheKey(userID, key)

	if cached, ok := s.cache.Get(ck); ok {
		if raw, ok := cached.([]byte); ok {
			if err := json.Unmarshal(raw, out); err == nil {
				return true
			}
		}
	}

	raw, err := s.repo.Get(ctx, userID, key)
	if err != nil {
		if !errors.Is(err, repository.ErrPrefNotFound) {
			ctxzap.Warn(ctx, "preference read failed, using defaults",
				zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		ctxzap.Warn(ctx, "corrupt preference value, using defaults",
			zap.String("key", key), zap.Error(err))
		return false
	}

	s.cache.Set(ck, raw, cacheTTL)

	return true
}

func (s *Store) Set(ctx context.Context, userID, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := s.repo.Set(ctx, userID, key, raw); err != nil {
		return err
	}

	s.cache.Set(cacheKey(userID, key), raw, cacheTTL)

	return nil
}

func (s *Store) Delete(ctx context.Context, userID, key string) error {
	s.cache.Delete(cacheKey(userID, key))

	return s.repo.Delete(ctx, userID, key)
}

// SurveyStats loads the survey trigger counters, zero-valued when absent.
func (s *Store) SurveyStats(ctx context.Context, userID string) entity.SurveyTriggerStats {
	var stats entity.SurveyTriggerStats
	s.Get(ctx, userID, KeySurveyStats, &stats)

	return stats
}

func (s *Store) SaveSurveyStats(ctx context.Context, userID string, stats entity.SurveyTriggerStats) error {
	return s.Set(ctx, userID, KeySurveyStats, stats)
}

// SurveyState loads the in-progress answer sheet, nil when none exists.
func (s *Store) SurveyState(ctx context.Context, userID string) *entity.SurveyState {
	var state entity.SurveyState
	if !s.Get(ctx, userID, KeySurveyState, &state) {
		return nil
	}

	return &state
}

func (s *Store) SaveSurveyState(ctx context.Context, userID string, state *entity.SurveyState) error {
	return s.Set(ctx, userID, KeySurveyState, state)
}

func (s *Store) ClearSurveyState(ctx context.Context, userID string) error {
	return s.Delete(ctx, userID, KeySurveyState)
}
