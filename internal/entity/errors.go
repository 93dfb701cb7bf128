package entity

import "errors"

// Domain errors
var (
	// Wizard errors
	ErrWizardNotFound   = errors.New("wizard session not found")
	ErrWizardCompleted  = errors.New("wizard session is already completed")
	ErrWrongWizardStep  = errors.New("action does not match current wizard step")
	ErrNoPreviousStep   = errors.New("no previous wizard step")
	ErrGenerationFailed = errors.New("script generation failed")

	// Pitch errors
	ErrPitchNotFound   = errors.New("pitch not found")
	ErrVersionNotFound = errors.New("script version not found")

	// Coach errors
	ErrCoachNotFound    = errors.New("coach session not found")
	ErrRecordingActive  = errors.New("recording is already active")
	ErrNotRecording     = errors.New("no active recording")
	ErrWrongCoachStatus = errors.New("action not allowed in current coach phase")

	// Simulation errors
	ErrSimulationNotFound  = errors.New("simulation not found")
	ErrSimulationNotActive = errors.New("simulation is not active")
	ErrSimulationCompleted = errors.New("simulation is already completed")

	// Suggestion errors
	ErrRateLimited       = errors.New("regeneration rate limit exceeded")
	ErrBatchNotFound     = errors.New("suggestion batch not found")
	ErrUnknownSuggestion = errors.New("suggestion not in current batch")

	// Survey errors
	ErrSurveyNotFound    = errors.New("survey not found")
	ErrQuestionNotFound  = errors.New("survey question not found")
	ErrQuestionHidden    = errors.New("survey question is not visible")
	ErrSurveyCompleted   = errors.New("survey is already completed")
	ErrInvalidAnswerType = errors.New("answer type does not match question type")

	// File errors
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidExtension = errors.New("invalid file extension")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)
