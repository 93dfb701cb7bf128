package entity

import "time"

type CoachStatus string

// Coach phases run strictly forward; Reset is the only way back to SETUP.
const (
	CoachStatusSetup      CoachStatus = "SETUP"
	CoachStatusRecording  CoachStatus = "RECORDING"
	CoachStatusProcessing CoachStatus = "PROCESSING"
	CoachStatusResults    CoachStatus = "RESULTS"
)

type ProcessingStep string

const (
	StepTranscribing ProcessingStep = "transcribing"
	StepAnalyzing    ProcessingStep = "analyzing"
	StepAggregating  ProcessingStep = "aggregating"
)

type PromptMode string

const (
	PromptModeTeleprompter PromptMode = "TELEPROMPTER"
	PromptModeCueCards     PromptMode = "CUE_CARDS"
)

// FrameSample is one sampled analysis frame captured during an active
// recording window.
type FrameSample struct {
	OffsetMs  int64   `json:"offset_ms"`
	Stability float64 `json:"stability"`
	Posture   float64 `json:"posture"`
	Smile     float64 `json:"smile"`
}

// RecordingSession holds one coach attempt's captured media. It is
// created when recording starts, sealed when it stops and discarded
// after processing; only the derived AnalysisResults survive.
type RecordingSession struct {
	Audio           []byte        `json:"-"`
	Video           []byte        `json:"-"`
	DurationSeconds int           `json:"duration_seconds"`
	Frames          []FrameSample `json:"frames"`
	SealedAt        *time.Time    `json:"sealed_at,omitempty"`
}

// ProcessingProgress exposes where the pipeline currently is so the
// client can show step names and a 0-100 bar.
type ProcessingProgress struct {
	Step     ProcessingStep `json:"step,omitempty"`
	Progress int            `json:"progress"`
}

// AnalysisResults is the final report of one coach attempt.
type AnalysisResults struct {
	ID              string         `json:"analysis_id,omitempty"`
	Transcript      string         `json:"transcript"`
	PaceWPM         float64        `json:"pace_wpm"`
	FillerTotal     int            `json:"filler_total"`
	FillerBreakdown map[string]int `json:"filler_breakdown"`
	StabilityScore  float64        `json:"stability_score"`
	PostureScore    float64        `json:"posture_score"`
	SmileScore      float64        `json:"smile_score"`
	ContentCoverage float64        `json:"content_coverage"`
	ProcessedAt     time.Time      `json:"processed_at"`
}

// CoachSession is the live state of one AI Coach instance. It lives in
// the in-memory session store; only AnalysisResults are persisted.
type CoachSession struct {
	ID           string             `json:"session_id"`
	UserID       string             `json:"user_id"`
	Status       CoachStatus        `json:"status"`
	PromptMode   PromptMode         `json:"prompt_mode"`
	Language     string             `json:"language"`
	ScriptBlocks []SpeechBlock      `json:"script_blocks,omitempty"`
	BulletPoints []string           `json:"bullet_points,omitempty"`
	Recording    *RecordingSession  `json:"recording,omitempty"`
	Processing   ProcessingProgress `json:"processing"`
	Results      *AnalysisResults   `json:"results,omitempty"`
	Error        *string            `json:"error,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
