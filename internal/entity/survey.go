package entity

import "time"

type SurveyKind string

const (
	SurveyKindQuick         SurveyKind = "QUICK"
	SurveyKindComprehensive SurveyKind = "COMPREHENSIVE"
)

type QuestionType string

const (
	QuestionTypeSingleSelect QuestionType = "SINGLE_SELECT"
	QuestionTypeMultiSelect  QuestionType = "MULTI_SELECT"
	QuestionTypeText         QuestionType = "TEXT"
	QuestionTypeScale        QuestionType = "SCALE"
)

// ShowIf makes a question conditional: it is visible only if the
// referenced prior question has been answered and the answer matches
// one of the accepted values (equality for single-select, intersection
// for multi-select).
type ShowIf struct {
	QuestionID string   `json:"question_id"`
	AnyOf      []string `json:"any_of"`
}

type SurveyQuestion struct {
	ID      string       `json:"id"`
	Type    QuestionType `json:"type"`
	Prompt  string       `json:"prompt"`
	Options []string     `json:"options,omitempty"`
	ShowIf  *ShowIf      `json:"show_if,omitempty"`
}

type Survey struct {
	ID        string           `json:"survey_id"`
	Kind      SurveyKind       `json:"kind"`
	Questions []SurveyQuestion `json:"questions"`
}

// SurveyAnswer carries exactly one of the three supported value shapes.
type SurveyAnswer struct {
	Text     string   `json:"text,omitempty"`
	Selected []string `json:"selected,omitempty"`
	Number   *float64 `json:"number,omitempty"`
}

// SurveyState is the in-progress answer sheet for one user and survey.
// It is persisted incrementally and cleared on submission.
type SurveyState struct {
	SurveyID     string                  `json:"survey_id"`
	Answers      map[string]SurveyAnswer `json:"answers"`
	CurrentIndex int                     `json:"current_index"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// SurveyTriggerStats are the locally persisted counters the trigger
// engine evaluates on every session event.
type SurveyTriggerStats struct {
	CompletedSessions     int  `json:"completed_sessions"`
	ConsecutiveAbandoned  int  `json:"consecutive_abandoned"`
	QuickCompleted        bool `json:"quick_completed"`
	ComprehensiveComplete bool `json:"comprehensive_completed"`
}

type SessionOutcome string

const (
	SessionOutcomeCompleted SessionOutcome = "COMPLETED"
	SessionOutcomeAbandoned SessionOutcome = "ABANDONED"
)

// SurveyResponse is a submitted survey, persisted for analysis.
// Friction tags are the categorized complaints collected by tag-type
// questions.
type SurveyResponse struct {
	ID           string                  `json:"response_id"`
	UserID       string                  `json:"user_id"`
	SurveyID     string                  `json:"survey_id"`
	Kind         SurveyKind              `json:"kind"`
	Answers      map[string]SurveyAnswer `json:"answers"`
	FrictionTags []string                `json:"friction_tags,omitempty"`
	SubmittedAt  time.Time               `json:"submitted_at"`
}
