package entity

import (
	"mime/multipart"
	"time"
)

type ErrorResponse struct {
	Error             string `json:"error"`
	Message           string `json:"message,omitempty"`
	RetryAfterSeconds int    `json:"retry_after_seconds,omitempty"`
}

// --- wizard ---

type StartWizardRequest struct {
	UserID string `json:"user_id"`
}

type ConfirmStepRequest struct {
	Step   WizardStatus  `json:"step"`
	Fields WizardAnswers `json:"fields"`
}

type WizardSessionDTO struct {
	ID        string        `json:"session_id"`
	Status    WizardStatus  `json:"status"`
	Answers   WizardAnswers `json:"answers"`
	PitchID   *string       `json:"pitch_id,omitempty"`
	Error     *string       `json:"error,omitempty"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type SaveVersionRequest struct {
	Name string `json:"name"`
}

// --- coach ---

type StartCoachRequest struct {
	UserID       string        `json:"user_id"`
	PromptMode   PromptMode    `json:"prompt_mode"`
	Language     string        `json:"language"`
	ScriptBlocks []SpeechBlock `json:"script_blocks,omitempty"`
	BulletPoints []string      `json:"bullet_points,omitempty"`
}

type AppendFrameRequest struct {
	OffsetMs  int64   `json:"offset_ms"`
	Stability float64 `json:"stability"`
	Posture   float64 `json:"posture"`
	Smile     float64 `json:"smile"`
}

type StopRecordingRequest struct {
	AudioFile *multipart.FileHeader
	VideoFile *multipart.FileHeader
}

type CoachSessionDTO struct {
	ID         string             `json:"session_id"`
	Status     CoachStatus        `json:"status"`
	PromptMode PromptMode         `json:"prompt_mode"`
	Language   string             `json:"language"`
	Duration   int                `json:"duration_seconds"`
	FrameCount int                `json:"frame_count"`
	Processing ProcessingProgress `json:"processing"`
	Results    *AnalysisResults   `json:"results,omitempty"`
	Error      *string            `json:"error,omitempty"`
}

// --- simulation ---

type StartSimulationRequest struct {
	UserID   string             `json:"user_id"`
	Scenario SimulationScenario `json:"scenario"`
}

type SubmitTurnRequest struct {
	Content string `json:"content"`
}

type SimulationDTO struct {
	ID              string           `json:"simulation_id"`
	Status          SimulationStatus `json:"status"`
	Scenario        SimulationScenario `json:"scenario"`
	Turns           []SimulationTurn `json:"turns"`
	DurationSeconds int              `json:"duration_seconds"`
	Score           *SimulationScore `json:"score,omitempty"`
}

// --- suggestions ---

type RegenerateRequest struct {
	UserID  string `json:"user_id"`
	Type    string `json:"type"`
	Idea    string `json:"idea"`
	Context string `json:"context,omitempty"`
}

type SelectSuggestionRequest struct {
	UserID     string `json:"user_id"`
	Type       string `json:"type"`
	Suggestion string `json:"suggestion"`
}

// --- survey ---

type SurveyAnswerRequest struct {
	UserID     string       `json:"user_id"`
	QuestionID string       `json:"question_id"`
	Answer     SurveyAnswer `json:"answer"`
}

type SurveyProgressDTO struct {
	SurveyID     string           `json:"survey_id"`
	Visible      []SurveyQuestion `json:"visible_questions"`
	CurrentIndex int              `json:"current_index"`
	Answered     int              `json:"answered"`
	Progress     int              `json:"progress"`
}

type SessionEventRequest struct {
	UserID          string         `json:"user_id"`
	Outcome         SessionOutcome `json:"outcome"`
	DurationSeconds int            `json:"duration_seconds"`
}

type SurveyOfferDTO struct {
	Offer bool        `json:"offer"`
	Kind  *SurveyKind `json:"kind,omitempty"`
}

// --- preferences ---

type SetPreferenceRequest struct {
	Value any `json:"value"`
}
