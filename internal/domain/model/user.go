package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	Interests      []string  `json:"interests"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserStats is the admin dashboard aggregate: registration counts plus how
// many users declared each interest.
type UserStats struct {
	Total     int            `json:"total"`
	Today     int            `json:"today"`
	ThisWeek  int            `json:"this_week"`
	Interests map[string]int `json:"interests"`
}

// PendingUser is a registration awaiting OTP verification. It lives in Redis
// next to the OTP code and never touches the database until verified.
type PendingUser struct {
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	HashedPassword string   `json:"hashed_password"`
	Interests      []string `json:"interests"`
}
