package wizard

import "github.com/pitchperfect/pitch-backend/internal/entity"

// toSessionDTO converts WizardSession entity to WizardSessionDTO
func toSessionDTO(session *entity.WizardSession) *entity.WizardSessionDTO {
	return &entity.WizardSessionDTO{
		ID:        session.ID,
		Status:    session.Status,
		Answers:   session.Answers,
		PitchID:   session.PitchID,
		Error:     session.Error,
		UpdatedAt: session.UpdatedAt,
	}
}
