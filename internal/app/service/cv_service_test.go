package service

import (
	"context"
	"strings"
	"testing"

	"evalux/internal/common"
	"evalux/internal/domain/model"
)

type fakeCVRepo struct {
	analyses []model.CVAnalysis
}

func (f *fakeCVRepo) Create(ctx context.Context, a *model.CVAnalysis) error {
	f.analyses = append(f.analyses, *a)
	return nil
}

func (f *fakeCVRepo) LatestByUser(ctx context.Context, userID string) (*model.CVAnalysis, error) {
	for i := len(f.analyses) - 1; i >= 0; i-- {
		if f.analyses[i].UserID == userID {
			a := f.analyses[i]
			return &a, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeCVRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, a := range f.analyses {
		if a.UserID == userID {
			count++
		}
	}
	return count, nil
}

const sampleCVText = `Jane Doe, software engineer with five years of experience.
Worked extensively with Python, JavaScript and SQL on backend services.
Deployed applications to AWS using Docker and Git-based pipelines.`

func TestAnalyzeKeywordFallback(t *testing.T) {
	repo := &fakeCVRepo{}
	svc := NewCVService(repo, nil)

	analysis, err := svc.Analyze(context.Background(), "u1", "cv.txt", []byte(sampleCVText))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(analysis.Result.Skills) == 0 {
		t.Fatal("no skills extracted")
	}
	found := false
	for _, skill := range analysis.Result.Skills {
		if skill == "python" {
			found = true
		}
	}
	if !found {
		t.Errorf("Skills = %v, want python included", analysis.Result.Skills)
	}
	if len(analysis.Result.InterviewQuestions) == 0 {
		t.Error("no interview questions produced")
	}
	if len(repo.analyses) != 1 {
		t.Errorf("analysis count = %d, want 1 persisted", len(repo.analyses))
	}
}

func TestAnalyzeRejectsTinyText(t *testing.T) {
	svc := NewCVService(&fakeCVRepo{}, nil)

	_, err := svc.Analyze(context.Background(), "u1", "cv.txt", []byte("too short"))
	if err == nil || !strings.Contains(err.Error(), "too little text") {
		t.Errorf("err = %v, want too-little-text rejection", err)
	}
}

func TestCountPerUser(t *testing.T) {
	repo := &fakeCVRepo{}
	svc := NewCVService(repo, nil)

	for i := 0; i < 2; i++ {
		if _, err := svc.Analyze(context.Background(), "u1", "cv.txt", []byte(sampleCVText)); err != nil {
			t.Fatalf("Analyze: %v", err)
		}
	}
	if _, err := svc.Analyze(context.Background(), "u2", "cv.txt", []byte(sampleCVText)); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	count, err := svc.Count(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}

	count, err = svc.Count(context.Background(), "u2")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("Count = %d, want 1", count)
	}
}
