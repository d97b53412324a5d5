package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"evalux/internal/codexec"
	"evalux/internal/common"
	"evalux/internal/domain/model"
)

type fakeProblemRepo struct {
	problems map[string]*model.CodingProblem
}

func (f *fakeProblemRepo) CreateProblem(ctx context.Context, p *model.CodingProblem) error {
	f.problems[p.ID] = p
	return nil
}

func (f *fakeProblemRepo) FindProblemByID(ctx context.Context, id string) (*model.CodingProblem, error) {
	p, ok := f.problems[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return p, nil
}

func (f *fakeProblemRepo) ListProblems(ctx context.Context, limit, offset int) ([]model.CodingProblem, int, error) {
	return nil, 0, nil
}

type fakeSubmissionRepo struct {
	outcomes []model.CodeOutcome
	scores   []model.SessionScore
}

func (f *fakeSubmissionRepo) AppendOutcome(ctx context.Context, o *model.CodeOutcome) error {
	f.outcomes = append(f.outcomes, *o)
	return nil
}

func (f *fakeSubmissionRepo) TodayFinalizing(ctx context.Context, userID string, limit int) ([]model.CodeOutcome, error) {
	var out []model.CodeOutcome
	for _, o := range f.outcomes {
		if o.UserID == userID && o.Finalize {
			out = append(out, o)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) AppendSessionScore(ctx context.Context, s *model.SessionScore) error {
	f.scores = append(f.scores, *s)
	return nil
}

func (f *fakeSubmissionRepo) SessionHistory(ctx context.Context, userID string, limit int) ([]model.SessionScore, error) {
	return f.scores, nil
}

func newTestSubmissionService() (*SubmissionService, *fakeProblemRepo, *fakeSubmissionRepo) {
	problems := &fakeProblemRepo{problems: map[string]*model.CodingProblem{
		"p1": {
			ID:             "p1",
			Title:          "Sum Even Numbers in Range",
			Description:    "Find the sum of all even numbers from 1 to 20.",
			ExpectedAnswer: "110",
		},
	}}
	subs := &fakeSubmissionRepo{}
	svc := NewSubmissionService(problems, subs, codexec.NewRunner(2*time.Second))
	return svc, problems, subs
}

func TestRunCodeCorrectSolution(t *testing.T) {
	svc, _, subs := newTestSubmissionService()

	resp, err := svc.RunCode(context.Background(), "u1", RunCodeRequest{
		ProblemID: "p1",
		Language:  "lua",
		Code: `
function solution()
    local total = 0
    for i = 2, 20, 2 do
        total = total + i
    end
    return total
end
`,
	})
	if err != nil {
		t.Fatalf("RunCode: %v", err)
	}
	if !resp.Passed {
		t.Errorf("Passed = false, output %q error %q", resp.Actual, resp.Error)
	}
	if resp.Score != 10 {
		t.Errorf("Score = %d, want 10", resp.Score)
	}
	if resp.Actual != "110" {
		t.Errorf("Actual = %q, want %q", resp.Actual, "110")
	}
	if len(subs.outcomes) != 1 || !subs.outcomes[0].Passed {
		t.Errorf("outcome not recorded as passed: %+v", subs.outcomes)
	}
}

func TestRunCodeWrongAnswerScoresZero(t *testing.T) {
	svc, _, subs := newTestSubmissionService()

	resp, err := svc.RunCode(context.Background(), "u1", RunCodeRequest{
		ProblemID: "p1",
		Language:  "lua",
		Code:      "function solution()\n    return 42\nend",
	})
	if err != nil {
		t.Fatalf("RunCode: %v", err)
	}
	if resp.Passed || resp.Score != 0 {
		t.Errorf("Passed = %v Score = %d, want failed with 0", resp.Passed, resp.Score)
	}
	if len(subs.outcomes) != 1 || subs.outcomes[0].Passed {
		t.Errorf("outcome not recorded as failed: %+v", subs.outcomes)
	}
}

func TestRunCodeBrokenCodeStillRecorded(t *testing.T) {
	svc, _, subs := newTestSubmissionService()

	resp, err := svc.RunCode(context.Background(), "u1", RunCodeRequest{
		ProblemID: "p1",
		Language:  "lua",
		Code:      "function solution()\n    return missing.field\nend",
	})
	if err != nil {
		t.Fatalf("RunCode: %v", err)
	}
	if resp.Success || resp.Passed || resp.Score != 0 {
		t.Errorf("broken code judged as %+v, want failed zero", resp)
	}
	if resp.Error == "" {
		t.Error("Error is empty, want runtime error text")
	}
	if len(subs.outcomes) != 1 {
		t.Errorf("outcome count = %d, want 1", len(subs.outcomes))
	}
}

func TestRunCodeUnknownProblem(t *testing.T) {
	svc, _, _ := newTestSubmissionService()

	_, err := svc.RunCode(context.Background(), "u1", RunCodeRequest{
		ProblemID: "nope",
		Language:  "lua",
		Code:      "function solution()\n    return 1\nend",
	})
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFinalizeSessionFoldsMean(t *testing.T) {
	svc, _, subs := newTestSubmissionService()
	subs.outcomes = []model.CodeOutcome{
		{UserID: "u1", Score: 10, Finalize: true},
		{UserID: "u1", Score: 0, Finalize: true},
		{UserID: "u1", Score: 10, Finalize: true},
		{UserID: "u1", Score: 10, Finalize: false}, // practice run, ignored
		{UserID: "u2", Score: 10, Finalize: true},  // another user, ignored
	}

	result, err := svc.FinalizeSession(context.Background(), "u1")
	if err != nil {
		t.Fatalf("FinalizeSession: %v", err)
	}
	if result.Score != 6.7 {
		t.Errorf("Score = %v, want 6.7", result.Score)
	}
	if result.ProblemsSolved != 3 {
		t.Errorf("ProblemsSolved = %d, want 3", result.ProblemsSolved)
	}
	if len(subs.scores) != 1 {
		t.Fatalf("session score not recorded")
	}
	if subs.scores[0].Score != 6.7 {
		t.Errorf("recorded Score = %v, want 6.7", subs.scores[0].Score)
	}
}

func TestLanguagesListsDeclaredSet(t *testing.T) {
	svc, _, _ := newTestSubmissionService()

	langs := svc.Languages()
	want := []string{"lua", "python", "javascript"}
	if len(langs) != len(want) {
		t.Fatalf("Languages() = %v, want %v", langs, want)
	}
	for i, lang := range want {
		if langs[i] != lang {
			t.Errorf("Languages()[%d] = %q, want %q", i, langs[i], lang)
		}
	}
}

func TestFinalizeSessionWithoutSubmissions(t *testing.T) {
	svc, _, subs := newTestSubmissionService()

	result, err := svc.FinalizeSession(context.Background(), "u1")
	if err != nil {
		t.Fatalf("FinalizeSession: %v", err)
	}
	if result.Score != 0 || result.ProblemsSolved != 0 {
		t.Errorf("result = %+v, want zero session", result)
	}
	if result.Message == "" {
		t.Error("Message is empty, want an explanation")
	}
	if len(subs.scores) != 0 {
		t.Errorf("empty day recorded a session score: %+v", subs.scores)
	}
}
