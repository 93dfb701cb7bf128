package entity

// Request/response contracts of the hosted generation service.

type GenerateSuggestionsRequest struct {
	Type    string `json:"type"`
	Idea    string `json:"idea"`
	Context string `json:"context,omitempty"`
}

type GenerateSuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type GenerateScriptRequest struct {
	Idea               string         `json:"idea"`
	AudienceLabel      string         `json:"audience_label"`
	DemoStyleID        string         `json:"demo_style_id,omitempty"`
	Problem            string         `json:"problem"`
	PersonaDescription string         `json:"persona_description"`
	PersonaKeywords    []string       `json:"persona_keywords,omitempty"`
	BusinessModels     []string       `json:"business_models"`
	DurationMinutes    int            `json:"duration_minutes"`
	HookStyle          HookStyle      `json:"hook_style"`
	Tier               GenerationTier `json:"tier"`
	TargetWordCount    int            `json:"target_word_count"`
}

type GeneratedBlock struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	IsDemo    bool    `json:"is_demo,omitempty"`
	VisualCue *string `json:"visual_cue,omitempty"`
}

type GenerateScriptResponse struct {
	Title        string           `json:"title"`
	Blocks       []GeneratedBlock `json:"blocks"`
	BulletPoints []string         `json:"bullet_points"`
	HookStyle    HookStyle        `json:"hook_style"`
}

// TurnMessage is a single history entry sent with counterpart-turn and
// scoring requests.
type TurnMessage struct {
	Speaker TurnSpeaker `json:"speaker"`
	Content string      `json:"content"`
}

type CounterpartTurnRequest struct {
	Scenario SimulationScenario `json:"scenario"`
	History  []TurnMessage      `json:"history"`
	Opening  bool               `json:"opening,omitempty"`
}

type CounterpartTurnResponse struct {
	Content         string  `json:"content"`
	Assessment      *string `json:"assessment,omitempty"`
	IsFinalQuestion bool    `json:"is_final_question"`
}

type DeliveryAnalysisRequest struct {
	Transcript      string `json:"transcript"`
	DurationSeconds int    `json:"duration_seconds"`
	ScriptText      string `json:"script_text,omitempty"`
	Language        string `json:"language,omitempty"`
}

type DeliveryAnalysisResponse struct {
	PaceWPM         float64        `json:"pace_wpm"`
	FillerBreakdown map[string]int `json:"filler_breakdown"`
	ContentCoverage float64        `json:"content_coverage"`
}

type ScoreSimulationRequest struct {
	Scenario SimulationScenario `json:"scenario"`
	History  []TurnMessage      `json:"history"`
}

type ScoreSimulationResponse struct {
	Score SimulationScore `json:"score"`
}
