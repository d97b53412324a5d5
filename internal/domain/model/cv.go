package model

import "time"

type CVAnalysis struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	FileName  string     `json:"file_name"`
	Text      string     `json:"-"` // parsed text, stored but not exposed
	Result    CVInsights `json:"result"`
	CreatedAt time.Time  `json:"created_at"`
}

// CVInsights is what the analyzer extracts from a CV: up to 8 skills and up
// to 5 tailored interview questions.
type CVInsights struct {
	Skills             []string `json:"skills"`
	InterviewQuestions []string `json:"interview_questions"`
}
