package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"evalux/internal/domain/model"
)

type InterviewRepository interface {
	Create(ctx context.Context, record *model.InterviewRecord) error
	ListByUser(ctx context.Context, userID string) ([]model.InterviewRecord, error)
}

type pgInterviewRepository struct {
	db *sql.DB
}

func NewPgInterviewRepository(db *sql.DB) InterviewRepository {
	return &pgInterviewRepository{db: db}
}

func (r *pgInterviewRepository) Create(ctx context.Context, rec *model.InterviewRecord) error {
	transcript, err := json.Marshal(rec.History)
	if err != nil {
		return fmt.Errorf("pgInterviewRepository.Create marshal transcript: %w", err)
	}
	feedback, err := json.Marshal(rec.Feedback)
	if err != nil {
		return fmt.Errorf("pgInterviewRepository.Create marshal feedback: %w", err)
	}

	query := `INSERT INTO interview_sessions (id, user_id, topic, started_at, transcript, score, feedback)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.db.ExecContext(ctx, query, rec.ID, rec.UserID, rec.Topic, rec.StartedAt, transcript, rec.Score, feedback)
	if err != nil {
		return fmt.Errorf("pgInterviewRepository.Create: %w", err)
	}
	return nil
}

func (r *pgInterviewRepository) ListByUser(ctx context.Context, userID string) ([]model.InterviewRecord, error) {
	query := `SELECT id, user_id, topic, started_at, ended_at, transcript, score, feedback
	          FROM interview_sessions WHERE user_id = $1
	          ORDER BY started_at ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgInterviewRepository.ListByUser query: %w", err)
	}
	defer rows.Close()

	records := []model.InterviewRecord{}
	for rows.Next() {
		var rec model.InterviewRecord
		var transcript, feedback []byte
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Topic, &rec.StartedAt, &rec.EndedAt, &transcript, &rec.Score, &feedback); err != nil {
			return nil, fmt.Errorf("pgInterviewRepository.ListByUser scan: %w", err)
		}
		if err := json.Unmarshal(transcript, &rec.History); err != nil {
			return nil, fmt.Errorf("pgInterviewRepository.ListByUser unmarshal transcript: %w", err)
		}
		if err := json.Unmarshal(feedback, &rec.Feedback); err != nil {
			return nil, fmt.Errorf("pgInterviewRepository.ListByUser unmarshal feedback: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgInterviewRepository.ListByUser rows.Err: %w", err)
	}
	return records, nil
}
