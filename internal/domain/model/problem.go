package model

import "time"

// CodingProblem is a self-contained "compute and return" exercise. The
// expected answer is the single source of truth a submission is judged
// against; once stored, a problem is never mutated, only superseded by a new
// generation.
type CodingProblem struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Slug           string            `json:"slug"`
	Description    string            `json:"description"`
	Difficulty     string            `json:"difficulty"`
	ExpectedAnswer string            `json:"expected_answer"`
	Hint           string            `json:"hint,omitempty"`
	StarterCode    map[string]string `json:"starter_code"` // keyed by language slug
	AIGenerated    bool              `json:"ai_generated"`
	CreatedAt      time.Time         `json:"created_at"`
}
