package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"evalux/internal/common"
	"evalux/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type ProblemRepository interface {
	CreateProblem(ctx context.Context, problem *model.CodingProblem) error
	FindProblemByID(ctx context.Context, id string) (*model.CodingProblem, error)
	ListProblems(ctx context.Context, limit, offset int) ([]model.CodingProblem, int, error)
}

type pgProblemRepository struct {
	db *sql.DB
}

func NewPgProblemRepository(db *sql.DB) ProblemRepository {
	return &pgProblemRepository{db: db}
}

func (r *pgProblemRepository) CreateProblem(ctx context.Context, p *model.CodingProblem) error {
	starter, err := json.Marshal(p.StarterCode)
	if err != nil {
		return fmt.Errorf("pgProblemRepository.CreateProblem marshal starter code: %w", err)
	}

	query := `INSERT INTO code_problems (id, title, slug, description, difficulty, expected_answer, hint, starter_code, ai_generated)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.Title, p.Slug, p.Description, p.Difficulty, p.ExpectedAnswer, p.Hint, starter, p.AIGenerated,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("problem already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgProblemRepository.CreateProblem: %w", err)
	}
	return nil
}

func (r *pgProblemRepository) FindProblemByID(ctx context.Context, id string) (*model.CodingProblem, error) {
	query := `SELECT id, title, slug, description, difficulty, expected_answer, hint, starter_code, ai_generated, created_at
	          FROM code_problems WHERE id = $1`
	p := &model.CodingProblem{}
	var starter []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Difficulty, &p.ExpectedAnswer, &p.Hint, &starter, &p.AIGenerated, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProblemRepository.FindProblemByID: %w", err)
	}
	if err := json.Unmarshal(starter, &p.StarterCode); err != nil {
		return nil, fmt.Errorf("pgProblemRepository.FindProblemByID unmarshal starter code: %w", err)
	}
	return p, nil
}

func (r *pgProblemRepository) ListProblems(ctx context.Context, limit, offset int) ([]model.CodingProblem, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM code_problems`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgProblemRepository.ListProblems count: %w", err)
	}

	query := `SELECT id, title, slug, description, difficulty, expected_answer, hint, starter_code, ai_generated, created_at
	          FROM code_problems ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgProblemRepository.ListProblems query: %w", err)
	}
	defer rows.Close()

	problems := []model.CodingProblem{}
	for rows.Next() {
		var p model.CodingProblem
		var starter []byte
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.Difficulty, &p.ExpectedAnswer, &p.Hint, &starter, &p.AIGenerated, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("pgProblemRepository.ListProblems scan: %w", err)
		}
		if err := json.Unmarshal(starter, &p.StarterCode); err != nil {
			return nil, 0, fmt.Errorf("pgProblemRepository.ListProblems unmarshal starter code: %w", err)
		}
		problems = append(problems, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgProblemRepository.ListProblems rows.Err: %w", err)
	}
	return problems, total, nil
}
