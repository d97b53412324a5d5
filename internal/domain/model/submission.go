package model

import "time"

// CodeOutcome is the persisted summary of one run-code call. Full execution
// results are never stored, only the judged fields.
type CodeOutcome struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProblemID string    `json:"problem_id"`
	Passed    bool      `json:"passed"`
	Score     int       `json:"score"`
	Finalize  bool      `json:"finalize"` // counts toward the day's session fold
	CreatedAt time.Time `json:"created_at"`
}

// SessionScore is one append-only summary of a day's finalizing outcomes:
// the rounded mean of per-problem binary scores plus the problem count.
type SessionScore struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Score          float64   `json:"score"`
	ProblemsSolved int       `json:"problems_solved"`
	CreatedAt      time.Time `json:"created_at"`
}
