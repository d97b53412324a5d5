package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"evalux/internal/common"
	"evalux/internal/domain/model"
)

type CVRepository interface {
	Create(ctx context.Context, analysis *model.CVAnalysis) error
	LatestByUser(ctx context.Context, userID string) (*model.CVAnalysis, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type pgCVRepository struct {
	db *sql.DB
}

func NewPgCVRepository(db *sql.DB) CVRepository {
	return &pgCVRepository{db: db}
}

func (r *pgCVRepository) Create(ctx context.Context, a *model.CVAnalysis) error {
	result, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("pgCVRepository.Create marshal analysis: %w", err)
	}

	query := `INSERT INTO cv_analyses (id, user_id, file_name, parsed_text, analysis)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err = r.db.ExecContext(ctx, query, a.ID, a.UserID, a.FileName, a.Text, result)
	if err != nil {
		return fmt.Errorf("pgCVRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCVRepository) LatestByUser(ctx context.Context, userID string) (*model.CVAnalysis, error) {
	query := `SELECT id, user_id, file_name, parsed_text, analysis, created_at
	          FROM cv_analyses WHERE user_id = $1
	          ORDER BY created_at DESC LIMIT 1`
	a := &model.CVAnalysis{}
	var result []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&a.ID, &a.UserID, &a.FileName, &a.Text, &result, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCVRepository.LatestByUser: %w", err)
	}
	if err := json.Unmarshal(result, &a.Result); err != nil {
		return nil, fmt.Errorf("pgCVRepository.LatestByUser unmarshal analysis: %w", err)
	}
	return a, nil
}

func (r *pgCVRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cv_analyses WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgCVRepository.CountByUser: %w", err)
	}
	return count, nil
}
