package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"unicode/utf8"

	"evalux/internal/common"
	"evalux/internal/domain/model"
	"evalux/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
)

const (
	maxSkills             = 8
	maxInterviewQuestions = 5
	maxStoredTextLen      = 5000
	minCVTextLen          = 50
)

// skillKeywords backs the deterministic analysis path: a case-insensitive
// scan of the CV text for well-known technology names.
var skillKeywords = []string{
	"python", "java", "javascript", "typescript", "go", "react", "node",
	"sql", "postgresql", "mongodb", "redis", "aws", "docker", "kubernetes",
	"git", "html", "css", "linux",
}

// CVService parses an uploaded CV and extracts skills plus tailored
// interview questions, via the AI provider when one is configured and a
// keyword scan otherwise.
type CVService struct {
	cvRepo   repository.CVRepository
	provider Completer
}

func NewCVService(cvRepo repository.CVRepository, provider Completer) *CVService {
	return &CVService{cvRepo: cvRepo, provider: provider}
}

// Analyze extracts text from the upload, derives insights and persists the
// analysis. PDF uploads are parsed; anything else is treated as plain text.
func (s *CVService) Analyze(ctx context.Context, userID, fileName string, data []byte) (*model.CVAnalysis, error) {
	text, err := extractText(fileName, data)
	if err != nil {
		return nil, fmt.Errorf("could not read file content: %w", common.ErrBadRequest)
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minCVTextLen {
		return nil, fmt.Errorf("file contains too little text to analyze: %w", common.ErrBadRequest)
	}

	insights := s.deriveInsights(ctx, text)

	analysis := &model.CVAnalysis{
		ID:       uuid.NewString(),
		UserID:   userID,
		FileName: fileName,
		Text:     truncateRunes(text, maxStoredTextLen),
		Result:   insights,
	}
	if err := s.cvRepo.Create(ctx, analysis); err != nil {
		return nil, fmt.Errorf("failed to store analysis: %w", err)
	}
	return analysis, nil
}

// LatestSkills returns the skill list from the user's most recent analysis,
// or nil when no CV has been uploaded yet.
func (s *CVService) LatestSkills(ctx context.Context, userID string) []string {
	analysis, err := s.cvRepo.LatestByUser(ctx, userID)
	if err != nil {
		return nil
	}
	return analysis.Result.Skills
}

func (s *CVService) Latest(ctx context.Context, userID string) (*model.CVAnalysis, error) {
	return s.cvRepo.LatestByUser(ctx, userID)
}

// Count reports how many CVs the user has uploaded.
func (s *CVService) Count(ctx context.Context, userID string) (int, error) {
	count, err := s.cvRepo.CountByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return count, nil
}

func (s *CVService) deriveInsights(ctx context.Context, text string) model.CVInsights {
	if s.provider != nil {
		insights, err := s.fromProvider(ctx, text)
		if err == nil {
			return insights
		}
		log.Printf("AI CV analysis failed: %v, falling back to keyword scan", err)
	}
	return keywordInsights(text)
}

func (s *CVService) fromProvider(ctx context.Context, text string) (model.CVInsights, error) {
	prompt := fmt.Sprintf(`Analyze this CV/resume text and extract:
1. Technical and professional skills (max %d)
2. Interview questions tailored to this candidate's background (max %d)

Return ONLY valid JSON:
{"skills": ["skill1", "skill2"], "interview_questions": ["question1", "question2"]}

CV TEXT:
%s`, maxSkills, maxInterviewQuestions, truncateRunes(text, 3000))

	reply, err := s.provider.Complete(ctx, prompt, 0.5, 800)
	if err != nil {
		return model.CVInsights{}, err
	}

	var insights model.CVInsights
	if err := json.Unmarshal([]byte(extractJSON(reply)), &insights); err != nil {
		return model.CVInsights{}, fmt.Errorf("malformed provider reply: %w", err)
	}
	if len(insights.Skills) == 0 {
		return model.CVInsights{}, fmt.Errorf("provider reply contains no skills")
	}

	if len(insights.Skills) > maxSkills {
		insights.Skills = insights.Skills[:maxSkills]
	}
	if len(insights.InterviewQuestions) > maxInterviewQuestions {
		insights.InterviewQuestions = insights.InterviewQuestions[:maxInterviewQuestions]
	}
	return insights, nil
}

func keywordInsights(text string) model.CVInsights {
	lower := strings.ToLower(text)

	var skills []string
	for _, kw := range skillKeywords {
		if strings.Contains(lower, kw) {
			skills = append(skills, kw)
			if len(skills) == maxSkills {
				break
			}
		}
	}
	if len(skills) == 0 {
		skills = []string{"communication", "problem solving"}
	}

	questions := []string{
		"Tell me about your most challenging project.",
		"How do you approach learning a new technology?",
		"Describe a time you had to debug a difficult problem.",
	}
	if len(skills) > 0 {
		questions = append(questions, fmt.Sprintf("Can you walk me through your experience with %s?", skills[0]))
	}
	if len(questions) > maxInterviewQuestions {
		questions = questions[:maxInterviewQuestions]
	}

	return model.CVInsights{Skills: skills, InterviewQuestions: questions}
}

// extractText pulls plain text from the upload. PDF parsing failures fall
// through to the caller; other formats are assumed to already be text.
func extractText(fileName string, data []byte) (string, error) {
	if strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return "", fmt.Errorf("parse pdf: %w", err)
		}
		content, err := reader.GetPlainText()
		if err != nil {
			return "", fmt.Errorf("extract pdf text: %w", err)
		}
		text, err := io.ReadAll(content)
		if err != nil {
			return "", fmt.Errorf("read pdf text: %w", err)
		}
		return string(text), nil
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8 text")
	}
	return string(data), nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
