package validator

import (
	"fmt"

	"github.com/pitchperfect/pitch-backend/internal/entity"
)

// ValidateStartWizard validates StartWizardRequest
func (v *Validator) ValidateStartWizard(req *entity.StartWizardRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: user_id", entity.ErrMissingField)
	}
	return nil
}

// ValidateConfirmStep checks that the step's required fields are
// populated. Continue is only enabled when this passes; nothing is
// merged on failure.
func (v *Validator) ValidateConfirmStep(req *entity.ConfirmStepRequest) error {
	f := req.Fields

	switch req.Step {
	case entity.WizardStatusIdea:
		if f.Idea == "" {
			return fmt.Errorf("%w: idea", entity.ErrMissingField)
		}
	case entity.WizardStatusAudience:
		if f.AudienceID == "" || f.AudienceLabel == "" {
			return fmt.Errorf("%w: audience", entity.ErrMissingField)
		}
	case entity.WizardStatusDemo:
		// Demo style is the only optional step; an empty selection is a
		// deliberate "no demo".
	case entity.WizardStatusProblem:
		if f.Problem == "" {
			return fmt.Errorf("%w: problem", entity.ErrMissingField)
		}
	case entity.WizardStatusPersona:
		if f.PersonaDescription == "" {
			return fmt.Errorf("%w: persona_description", entity.ErrMissingField)
		}
	case entity.WizardStatusBusinessModel:
		if len(f.BusinessModels) == 0 {
			return fmt.Errorf("%w: business_models", entity.ErrMissingField)
		}
		if f.DurationMinutes < 1 || f.DurationMinutes > 20 {
			return fmt.Errorf("%w: duration_minutes must be between 1 and 20", entity.ErrInvalidParameter)
		}
		if err := f.HookStyle.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: step %q", entity.ErrInvalidParameter, string(req.Step))
	}

	return nil
}
