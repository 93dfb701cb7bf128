package validator

import (
	"fmt"
	"net/url"

	"github.com/pitchperfect/pitch-backend/internal/entity"
)

// ValidateStartCoach validates StartCoachRequest
func (v *Validator) ValidateStartCoach(req *entity.StartCoachRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: user_id", entity.ErrMissingField)
	}
	switch req.PromptMode {
	case entity.PromptModeTeleprompter, entity.PromptModeCueCards:
	default:
		return fmt.Errorf("%w: prompt_mode %q", entity.ErrInvalidParameter, string(req.PromptMode))
	}
	if req.Language == "" {
		return fmt.Errorf("%w: language", entity.ErrMissingField)
	}
	return nil
}

// ValidateStartSimulation validates StartSimulationRequest
func (v *Validator) ValidateStartSimulation(req *entity.StartSimulationRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: user_id", entity.ErrMissingField)
	}
	if err := req.Scenario.Kind.Validate(); err != nil {
		return err
	}
	if req.Scenario.Role == "" {
		return fmt.Errorf("%w: scenario.role", entity.ErrMissingField)
	}
	return nil
}

// ValidateSubmitTurn validates SubmitTurnRequest
func (v *Validator) ValidateSubmitTurn(req *entity.SubmitTurnRequest) error {
	if req.Content == "" {
		return fmt.Errorf("%w: content", entity.ErrMissingField)
	}
	return nil
}

// ValidateRegenerate validates RegenerateRequest
func (v *Validator) ValidateRegenerate(req *entity.RegenerateRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: user_id", entity.ErrMissingField)
	}
	if req.Type == "" {
		return fmt.Errorf("%w: type", entity.ErrMissingField)
	}
	if req.Idea == "" {
		return fmt.Errorf("%w: idea", entity.ErrMissingField)
	}
	return nil
}

// ValidateScrapeURL checks the URL before it is sent to the scraping
// service.
func (v *Validator) ValidateScrapeURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: url", entity.ErrMissingField)
	}
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w: url %q", entity.ErrInvalidParameter, raw)
	}
	return nil
}
