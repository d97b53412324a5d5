package service

import (
	"context"
	"fmt"

	"evalux/internal/domain/model"
	"evalux/internal/domain/repository"
	"evalux/internal/problemgen"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ProblemService produces and serves coding problems. Generation goes
// through the AI provider with the curated catalog as fallback; either way
// the problem is persisted before it is handed out, so a later submission
// always finds its expected answer.
type ProblemService struct {
	problemRepo repository.ProblemRepository
	cvRepo      repository.CVRepository
	generator   *problemgen.Generator
}

func NewProblemService(problemRepo repository.ProblemRepository, cvRepo repository.CVRepository, generator *problemgen.Generator) *ProblemService {
	return &ProblemService{problemRepo: problemRepo, cvRepo: cvRepo, generator: generator}
}

// Generate builds a fresh problem for the user, biased by their latest CV
// skills when available, and stores it.
func (s *ProblemService) Generate(ctx context.Context, userID string) (*model.CodingProblem, error) {
	var skills []string
	if analysis, err := s.cvRepo.LatestByUser(ctx, userID); err == nil {
		skills = analysis.Result.Skills
	}

	problem := s.generator.Generate(ctx, skills)
	problem.ID = uuid.NewString()
	problem.Slug = slug.Make(problem.Title) + "-" + problem.ID[:8]

	if err := s.problemRepo.CreateProblem(ctx, &problem); err != nil {
		return nil, fmt.Errorf("failed to store problem: %w", err)
	}
	return &problem, nil
}

func (s *ProblemService) Get(ctx context.Context, id string) (*model.CodingProblem, error) {
	return s.problemRepo.FindProblemByID(ctx, id)
}

func (s *ProblemService) List(ctx context.Context, limit, offset int) ([]model.CodingProblem, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.problemRepo.ListProblems(ctx, limit, offset)
}
