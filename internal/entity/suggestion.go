package entity

import "time"

// SuggestionBatch is the latest set of AI suggestions for one user and
// suggestion type, with the user's selections on that batch. A new
// explicit regeneration replaces the batch and clears selections; a
// background retry must never clear selections made on a prior
// successful batch.
type SuggestionBatch struct {
	Type        string    `json:"type"`
	Suggestions []string  `json:"suggestions"`
	Selected    []string  `json:"selected,omitempty"`
	Fallback    bool      `json:"fallback,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}
