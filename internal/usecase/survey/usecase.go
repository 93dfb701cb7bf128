package survey

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pitchperfect/pitch-backend/internal/config"
	"github.com/pitchperfect/pitch-backend/internal/entity"
	"go.uber.org/zap"
)

// Usecase runs the in-product feedback surveys: conditional question
// visibility, incremental answer persistence and the trigger engine
// that decides when to offer which survey.
type Usecase struct {
	repo   SurveyRepository
	prefs  PrefsStore
	cfg    config.SurveyConfig
	logger *zap.Logger
}

func NewUsecase(
	repo SurveyRepository,
	prefs PrefsStore,
	cfg *config.Config,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		repo:   repo,
		prefs:  prefs,
		cfg:    cfg.SurveyCfg,
		logger: logger,
	}
}

func (u *Usecase) GetSurvey(ctx context.Context, surveyID string) (*entity.Survey, error) {
	survey, ok := surveyByID(surveyID)
	if !ok {
		return nil, entity.ErrSurveyNotFound
	}

	return survey, nil
}

// Progress reports the visible question set and the user's position in
// it. The stored index is clamped because answering a gating question
// can shrink the visible set.
func (u *Usecase) Progress(ctx context.Context, userID, surveyID string) (*entity.SurveyProgressDTO, error) {
	survey, ok := surveyByID(surveyID)
	if !ok {
		return nil, entity.ErrSurveyNotFound
	}

	answers := map[string]entity.SurveyAnswer{}
	index := 0
	if state := u.prefs.SurveyState(ctx, userID); state != nil && state.SurveyID == surveyID {
		answers = state.Answers
		index = state.CurrentIndex
	}

	visible := VisibleQuestions(survey, answers)
	index = ClampIndex(index, len(visible))

	answered := 0
	for _, question := range visible {
		if _, ok := answers[question.ID]; ok {
			answered++
		}
	}

	progress := 0
	if len(visible) > 0 {
		progress = answered * 100 / len(visible)
	}

	return &entity.SurveyProgressDTO{
		SurveyID:     surveyID,
		Visible:      visible,
		CurrentIndex: index,
		Answered:     answered,
		Progress:     progress,
	}, nil
}

// Answer stores one answer and advances the current index. Hidden
// questions cannot be answered; the answer shape must match the
// question type.
func (u *Usecase) Answer(ctx context.Context, surveyID string, req *entity.SurveyAnswerRequest) (*entity.SurveyProgressDTO, error) {
	survey, ok := surveyByID(surveyID)
	if !ok {
		return nil, entity.ErrSurveyNotFound
	}

	state := u.prefs.SurveyState(ctx, req.UserID)
	if state == nil || state.SurveyID != surveyID {
		state = &entity.SurveyState{
			SurveyID: surveyID,
			Answers:  map[string]entity.SurveyAnswer{},
		}
	}

	question, err := findVisibleQuestion(survey, state.Answers, req.QuestionID)
	if err != nil {
		return nil, err
	}

	if err := validateAnswerShape(question, req.Answer); err != nil {
		return nil, err
	}

	state.Answers[req.QuestionID] = req.Answer

	// Recompute visibility with the new answer before positioning.
	visible := VisibleQuestions(survey, state.Answers)
	for i, q := range visible {
		if q.ID == req.QuestionID {
			state.CurrentIndex = ClampIndex(i+1, len(visible))
			break
		}
	}
	state.UpdatedAt = time.Now()

	if err := u.prefs.SaveSurveyState(ctx, req.UserID, state); err != nil {
		return nil, err
	}

	return u.Progress(ctx, req.UserID, surveyID)
}

// Submit finalizes the survey: only answers to currently visible
// questions are kept, friction tags are lifted out, the response is
// persisted and the in-progress state is cleared.
func (u *Usecase) Submit(ctx context.Context, userID, surveyID string) (*entity.SurveyResponse, error) {
	survey, ok := surveyByID(surveyID)
	if !ok {
		return nil, entity.ErrSurveyNotFound
	}

	state := u.prefs.SurveyState(ctx, userID)
	if state == nil || state.SurveyID != surveyID {
		return nil, entity.ErrSurveyNotFound
	}

	visible := VisibleQuestions(survey, state.Answers)
	answers := make(map[string]entity.SurveyAnswer, len(visible))
	var frictionTags []string
	for _, question := range visible {
		answer, ok := state.Answers[question.ID]
		if !ok {
			continue
		}
		answers[question.ID] = answer
		if question.ID == frictionQuestionID {
			frictionTags = answer.Selected
		}
	}

	response := &entity.SurveyResponse{
		ID:           uuid.NewString(),
		UserID:       userID,
		SurveyID:     surveyID,
		Kind:         survey.Kind,
		Answers:      answers,
		FrictionTags: frictionTags,
		SubmittedAt:  time.Now(),
	}

	if err := u.repo.CreateResponse(ctx, response); err != nil {
		return nil, err
	}

	stats := u.prefs.SurveyStats(ctx, userID)
	switch survey.Kind {
	case entity.SurveyKindQuick:
		stats.QuickCompleted = true
	case entity.SurveyKindComprehensive:
		stats.ComprehensiveComplete = true
	}
	if err := u.prefs.SaveSurveyStats(ctx, userID, stats); err != nil {
		ctxzap.Warn(ctx, "failed to update survey stats", zap.Error(err))
	}

	if err := u.prefs.ClearSurveyState(ctx, userID); err != nil {
		ctxzap.Warn(ctx, "failed to clear survey state", zap.Error(err))
	}

	ctxzap.Info(ctx, "survey submitted",
		zap.String("survey_id", surveyID),
		zap.Int("answer_count", len(answers)),
		zap.Strings("friction_tags", frictionTags),
	)

	return response, nil
}

// SessionEvent updates the trigger counters and decides whether to
// offer a survey. Each survey kind is offered at most once per user.
func (u *Usecase) SessionEvent(ctx context.Context, req *entity.SessionEventRequest) (*entity.SurveyOfferDTO, error) {
	stats := u.prefs.SurveyStats(ctx, req.UserID)

	switch req.Outcome {
	case entity.SessionOutcomeCompleted:
		stats.CompletedSessions++
		stats.ConsecutiveAbandoned = 0
	case entity.SessionOutcomeAbandoned:
		stats.ConsecutiveAbandoned++
	default:
		return nil, fmt.Errorf("%w: outcome %q", entity.ErrInvalidParameter, string(req.Outcome))
	}

	if err := u.prefs.SaveSurveyStats(ctx, req.UserID, stats); err != nil {
		return nil, err
	}

	if kind, ok := u.evaluateTriggers(stats, req); ok {
		survey := surveyByKind(kind)

		ctxzap.Info(ctx, "survey offered",
			zap.String("kind", string(kind)),
			zap.String("survey_id", survey.ID),
		)

		return &entity.SurveyOfferDTO{Offer: true, Kind: &kind}, nil
	}

	return &entity.SurveyOfferDTO{}, nil
}

// evaluateTriggers checks the comprehensive survey first: it is the
// richer signal and its conditions are rarer.
func (u *Usecase) evaluateTriggers(stats entity.SurveyTriggerStats, req *entity.SessionEventRequest) (entity.SurveyKind, bool) {
	if !stats.ComprehensiveComplete {
		if stats.CompletedSessions >= u.cfg.ComprehensiveCompleted ||
			stats.ConsecutiveAbandoned >= u.cfg.ComprehensiveAbandonedRun {
			return entity.SurveyKindComprehensive, true
		}
	}

	if !stats.QuickCompleted &&
		req.Outcome == entity.SessionOutcomeCompleted &&
		req.DurationSeconds >= u.cfg.QuickSessionSeconds {
		return entity.SurveyKindQuick, true
	}

	return "", false
}

func findVisibleQuestion(survey *entity.Survey, answers map[string]entity.SurveyAnswer, questionID string) (*entity.SurveyQuestion, error) {
	for _, question := range survey.Questions {
		if question.ID != questionID {
			continue
		}
		if question.ShowIf != nil && !answerMatches(answers, question.ShowIf) {
			return nil, entity.ErrQuestionHidden
		}
		q := question
		return &q, nil
	}

	return nil, entity.ErrQuestionNotFound
}

func validateAnswerShape(question *entity.SurveyQuestion, answer entity.SurveyAnswer) error {
	switch question.Type {
	case entity.QuestionTypeText:
		if answer.Text == "" {
			return entity.ErrInvalidAnswerType
		}
	case entity.QuestionTypeSingleSelect:
		if len(answer.Selected) != 1 {
			return entity.ErrInvalidAnswerType
		}
	case entity.QuestionTypeMultiSelect:
		if len(answer.Selected) == 0 {
			return entity.ErrInvalidAnswerType
		}
	case entity.QuestionTypeScale:
		if answer.Number == nil {
			return entity.ErrInvalidAnswerType
		}
	}

	return nil
}
