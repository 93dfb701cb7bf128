package entity

import (
	"fmt"
	"time"
)

type WizardStatus string

// Wizard status tracks the user's position in the pitch creation flow.
// The form steps run strictly in order; READY is the "all answers
// collected, generation not yet requested" terminal form state.
const (
	WizardStatusIdea          WizardStatus = "IDEA"
	WizardStatusAudience      WizardStatus = "AUDIENCE"
	WizardStatusDemo          WizardStatus = "DEMO"
	WizardStatusProblem       WizardStatus = "PROBLEM"
	WizardStatusPersona       WizardStatus = "PERSONA"
	WizardStatusBusinessModel WizardStatus = "BUSINESS_MODEL"
	WizardStatusReady         WizardStatus = "READY"
	WizardStatusGenerating    WizardStatus = "GENERATING"
	WizardStatusDone          WizardStatus = "DONE"
)

// WizardStepOrder is the forward path through the form steps.
var WizardStepOrder = []WizardStatus{
	WizardStatusIdea,
	WizardStatusAudience,
	WizardStatusDemo,
	WizardStatusProblem,
	WizardStatusPersona,
	WizardStatusBusinessModel,
	WizardStatusReady,
}

// StepIndex returns the position of a status on the forward path,
// or -1 for the generation states.
func StepIndex(status WizardStatus) int {
	for i, s := range WizardStepOrder {
		if s == status {
			return i
		}
	}
	return -1
}

type HookStyle string

const (
	HookStyleStatistic HookStyle = "STATISTIC"
	HookStyleStory     HookStyle = "STORY"
	HookStyleQuestion  HookStyle = "QUESTION"
	HookStyleBold      HookStyle = "BOLD_CLAIM"
)

func (h HookStyle) Validate() error {
	switch h {
	case HookStyleStatistic, HookStyleStory, HookStyleQuestion, HookStyleBold:
		return nil
	default:
		return fmt.Errorf("%w: unknown hook style %q", ErrInvalidParameter, string(h))
	}
}

type GenerationTier string

const (
	TierStandard GenerationTier = "STANDARD"
	TierPremium  GenerationTier = "PREMIUM"
)

// WizardAnswers is the accumulated answer set of one wizard run. Each
// confirmed step merges its fields; nothing is ever removed so the user
// can go back and review without losing input.
type WizardAnswers struct {
	Idea               string         `json:"idea,omitempty"`
	AudienceID         string         `json:"audience_id,omitempty"`
	AudienceLabel      string         `json:"audience_label,omitempty"`
	DemoStyleID        string         `json:"demo_style_id,omitempty"`
	Problem            string         `json:"problem,omitempty"`
	PersonaDescription string         `json:"persona_description,omitempty"`
	PersonaKeywords    []string       `json:"persona_keywords,omitempty"`
	BusinessModels     []string       `json:"business_models,omitempty"`
	DurationMinutes    int            `json:"duration_minutes,omitempty"`
	HookStyle          HookStyle      `json:"hook_style,omitempty"`
	Tier               GenerationTier `json:"tier,omitempty"`
}

type WizardSession struct {
	ID        string        `json:"session_id"`
	UserID    string        `json:"user_id"`
	Status    WizardStatus  `json:"status"`
	Answers   WizardAnswers `json:"answers"`
	PitchID   *string       `json:"pitch_id,omitempty"`
	Error     *string       `json:"error,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
