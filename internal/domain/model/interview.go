package model

import "time"

// InterviewSession is the live chat state. While the interview is running it
// lives in Redis with a TTL; on end it is rated and written to the database.
type InterviewSession struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	Topic     string             `json:"topic"`
	Stage     string             `json:"stage"`
	CVSkills  []string           `json:"cv_skills"`
	History   []InterviewMessage `json:"history"`
	CreatedAt time.Time          `json:"created_at"`
}

type InterviewMessage struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// InterviewRating is the 0-10 assessment produced when a session ends.
// Score is nil when the interview was too short to rate.
type InterviewRating struct {
	Score        *float64 `json:"score"`
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths,omitempty"`
	Improvements []string `json:"improvements,omitempty"`
	Weaknesses   []string `json:"weaknesses,omitempty"`
	Tips         []string `json:"tips,omitempty"`
	Incomplete   bool     `json:"incomplete"`
}

// InterviewRecord is the persisted form of a finished session.
type InterviewRecord struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	Topic     string             `json:"topic"`
	StartedAt time.Time          `json:"started_at"`
	EndedAt   time.Time          `json:"ended_at"`
	History   []InterviewMessage `json:"history"`
	Score     *float64           `json:"score"`
	Feedback  InterviewRating    `json:"feedback"`
}
