package entity

import "time"

// SpeechBlock is one timed segment of a generated pitch script.
// Block time ranges are contiguous and non-overlapping, covering
// [0, duration] of the pitch.
type SpeechBlock struct {
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	IsDemo       bool    `json:"is_demo,omitempty"`
	VisualCue    *string `json:"visual_cue,omitempty"`
}

// Pitch is the generated script artifact produced by the wizard.
type Pitch struct {
	ID              string        `json:"pitch_id"`
	UserID          string        `json:"user_id"`
	WizardSessionID string        `json:"wizard_session_id"`
	Title           string        `json:"title"`
	HookStyle       HookStyle     `json:"hook_style"`
	DurationMinutes int           `json:"duration_minutes"`
	TargetWordCount int           `json:"target_word_count"`
	ActualWordCount int           `json:"actual_word_count"`
	Blocks          []SpeechBlock `json:"blocks"`
	BulletPoints    []string      `json:"bullet_points"`
	FullText        string        `json:"full_text"`
	CreatedAt       time.Time     `json:"created_at"`
}

// ScriptVersion is a named, timestamped snapshot of a pitch's blocks,
// kept for compare/restore.
type ScriptVersion struct {
	ID        string        `json:"version_id"`
	PitchID   string        `json:"pitch_id"`
	Name      string        `json:"name"`
	Blocks    []SpeechBlock `json:"blocks"`
	WordCount int           `json:"word_count"`
	CreatedAt time.Time     `json:"created_at"`
}

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "md"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)
