package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"evalux/internal/codexec"
	"evalux/internal/common"
	"evalux/internal/domain/model"
	"evalux/internal/domain/repository"

	"github.com/google/uuid"
)

const (
	passScore         = 10
	sessionFoldLimit  = 10
	sessionHistoryCap = 30
)

// SubmissionService runs submitted code against a problem's expected answer
// and folds finalizing outcomes into daily session scores.
type SubmissionService struct {
	problemRepo repository.ProblemRepository
	subRepo     repository.SubmissionRepository
	runner      *codexec.Runner
}

func NewSubmissionService(problemRepo repository.ProblemRepository, subRepo repository.SubmissionRepository, runner *codexec.Runner) *SubmissionService {
	return &SubmissionService{problemRepo: problemRepo, subRepo: subRepo, runner: runner}
}

type RunCodeRequest struct {
	ProblemID string `json:"problem_id"`
	Code      string `json:"code"`
	Language  string `json:"language"`
	Finalize  bool   `json:"finalize"` // counts toward the day's session score
}

type RunCodeResponse struct {
	Success  bool   `json:"success"`
	Output   string `json:"output"`
	Passed   bool   `json:"passed"`
	Score    int    `json:"score"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Error    string `json:"error,omitempty"`
}

type SessionResult struct {
	Score          float64 `json:"score"`
	ProblemsSolved int     `json:"problems_solved"`
	Message        string  `json:"message,omitempty"`
}

// RunCode executes the submission, judges it against the problem's expected
// answer and records the outcome. Execution failures are still judged (as a
// zero) and recorded; the caller always gets a full response.
func (s *SubmissionService) RunCode(ctx context.Context, userID string, req RunCodeRequest) (*RunCodeResponse, error) {
	if req.ProblemID == "" || strings.TrimSpace(req.Code) == "" {
		return nil, common.ErrBadRequest
	}
	lang := req.Language
	if lang == "" {
		lang = string(codexec.LanguageLua)
	}

	problem, err := s.problemRepo.FindProblemByID(ctx, req.ProblemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load problem: %w", err)
	}

	result := s.runner.Run(ctx, req.Code, codexec.Language(lang))

	passed := result.Success && codexec.Compare(result.Output, problem.ExpectedAnswer)
	score := 0
	if passed {
		score = passScore
	}

	outcome := &model.CodeOutcome{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProblemID: problem.ID,
		Passed:    passed,
		Score:     score,
		Finalize:  req.Finalize,
	}
	if err := s.subRepo.AppendOutcome(ctx, outcome); err != nil {
		return nil, fmt.Errorf("failed to record outcome: %w", err)
	}

	return &RunCodeResponse{
		Success:  result.Success,
		Output:   buildOutputText(problem.ExpectedAnswer, result, passed),
		Passed:   passed,
		Score:    score,
		Expected: problem.ExpectedAnswer,
		Actual:   result.Output,
		Error:    result.Error,
	}, nil
}

// FinalizeSession folds today's finalizing outcomes into one immutable
// session score: the mean of the per-problem scores, rounded to one decimal.
func (s *SubmissionService) FinalizeSession(ctx context.Context, userID string) (*SessionResult, error) {
	outcomes, err := s.subRepo.TodayFinalizing(ctx, userID, sessionFoldLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load outcomes: %w", err)
	}
	// An empty day is not an error: report a zero session without recording
	// anything, so clients can poll finalize safely.
	if len(outcomes) == 0 {
		return &SessionResult{Message: "No submissions to finalize today"}, nil
	}

	var sum float64
	for _, o := range outcomes {
		sum += float64(o.Score)
	}
	score := math.Round(sum/float64(len(outcomes))*10) / 10

	record := &model.SessionScore{
		ID:             uuid.NewString(),
		UserID:         userID,
		Score:          score,
		ProblemsSolved: len(outcomes),
	}
	if err := s.subRepo.AppendSessionScore(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record session score: %w", err)
	}

	return &SessionResult{Score: score, ProblemsSolved: len(outcomes)}, nil
}

func (s *SubmissionService) SessionHistory(ctx context.Context, userID string) ([]model.SessionScore, error) {
	return s.subRepo.SessionHistory(ctx, userID, sessionHistoryCap)
}

// Languages lists every declared submission language, implemented or not, so
// clients can render the picker without hardcoding the set.
func (s *SubmissionService) Languages() []string {
	langs := codexec.Languages()
	names := make([]string, 0, len(langs))
	for _, lang := range langs {
		names = append(names, string(lang))
	}
	return names
}

func buildOutputText(expected string, result codexec.Result, passed bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Expected: %s\n", expected)
	fmt.Fprintf(&b, "Your Output: %s\n\n", result.Output)
	if passed {
		b.WriteString("CORRECT!")
	} else {
		b.WriteString("INCORRECT")
	}
	if result.Error != "" {
		fmt.Fprintf(&b, "\nError: %s", result.Error)
	}
	return b.String()
}
