package repository

import (
	"context"
	"database/sql"
	"fmt"

	"evalux/internal/domain/model"
)

type SubmissionRepository interface {
	AppendOutcome(ctx context.Context, outcome *model.CodeOutcome) error
	TodayFinalizing(ctx context.Context, userID string, limit int) ([]model.CodeOutcome, error)
	AppendSessionScore(ctx context.Context, score *model.SessionScore) error
	SessionHistory(ctx context.Context, userID string, limit int) ([]model.SessionScore, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) AppendOutcome(ctx context.Context, o *model.CodeOutcome) error {
	query := `INSERT INTO code_outcomes (id, user_id, problem_id, passed, score, finalize)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, o.ID, o.UserID, o.ProblemID, o.Passed, o.Score, o.Finalize)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.AppendOutcome: %w", err)
	}
	return nil
}

// TodayFinalizing returns the user's finalizing outcomes recorded since the
// server's local midnight, most recent first, capped at limit.
func (r *pgSubmissionRepository) TodayFinalizing(ctx context.Context, userID string, limit int) ([]model.CodeOutcome, error) {
	query := `SELECT id, user_id, problem_id, passed, score, finalize, created_at
	          FROM code_outcomes
	          WHERE user_id = $1 AND finalize = TRUE AND created_at >= CURRENT_DATE
	          ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.TodayFinalizing query: %w", err)
	}
	defer rows.Close()

	outcomes := []model.CodeOutcome{}
	for rows.Next() {
		var o model.CodeOutcome
		if err := rows.Scan(&o.ID, &o.UserID, &o.ProblemID, &o.Passed, &o.Score, &o.Finalize, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.TodayFinalizing scan: %w", err)
		}
		outcomes = append(outcomes, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.TodayFinalizing rows.Err: %w", err)
	}
	return outcomes, nil
}

func (r *pgSubmissionRepository) AppendSessionScore(ctx context.Context, s *model.SessionScore) error {
	query := `INSERT INTO session_scores (id, user_id, score, problems_solved)
	          VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.UserID, s.Score, s.ProblemsSolved)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.AppendSessionScore: %w", err)
	}
	return nil
}

// SessionHistory returns the user's session scores oldest first, capped at
// limit, so clients can chart progression without re-sorting.
func (r *pgSubmissionRepository) SessionHistory(ctx context.Context, userID string, limit int) ([]model.SessionScore, error) {
	query := `SELECT id, user_id, score, problems_solved, created_at
	          FROM session_scores WHERE user_id = $1
	          ORDER BY created_at ASC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.SessionHistory query: %w", err)
	}
	defer rows.Close()

	scores := []model.SessionScore{}
	for rows.Next() {
		var s model.SessionScore
		if err := rows.Scan(&s.ID, &s.UserID, &s.Score, &s.ProblemsSolved, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.SessionHistory scan: %w", err)
		}
		scores = append(scores, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.SessionHistory rows.Err: %w", err)
	}
	return scores, nil
}
