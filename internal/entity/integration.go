package entity

// Contracts of the remaining hosted services: transcription,
// text-to-speech, URL scraping and document parsing.

type ASRTranscribeResponse struct {
	Text         string  `json:"text"`
	Words        []Word  `json:"words,omitempty"`
	LanguageCode *string `json:"language_code,omitempty"`
}

type Word struct {
	Text    string  `json:"text"`
	StartMs int64   `json:"start_ms"`
	EndMs   int64   `json:"end_ms"`
	Score   float64 `json:"score,omitempty"`
}

type TTSRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voiceId"`
}

type ScrapeRequest struct {
	URL string `json:"url"`
}

type ScrapedProjectData struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
	Features    []string `json:"features,omitempty"`
}

type ScrapeResponse struct {
	Success bool               `json:"success"`
	Data    ScrapedProjectData `json:"data"`
	Raw     string             `json:"raw,omitempty"`
}

type DocParseResponse struct {
	Success         bool     `json:"success"`
	Data            string   `json:"data"`
	ExtractedImages []string `json:"extractedImages,omitempty"`
}
