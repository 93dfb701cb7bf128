package coach

import "github.com/pitchperfect/pitch-backend/internal/entity"

// toSessionDTO converts CoachSession entity to CoachSessionDTO.
// Raw media never leaves the server.
func toSessionDTO(session *entity.CoachSession) *entity.CoachSessionDTO {
	dto := &entity.CoachSessionDTO{
		ID:         session.ID,
		Status:     session.Status,
		PromptMode: session.PromptMode,
		Language:   session.Language,
		Processing: session.Processing,
		Results:    session.Results,
		Error:      session.Error,
	}

	if session.Recording != nil {
		dto.Duration = session.Recording.DurationSeconds
		dto.FrameCount = len(session.Recording.Frames)
	}

	return dto
}
