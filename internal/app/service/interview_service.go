package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"evalux/internal/common"
	"evalux/internal/domain/model"
	"evalux/internal/domain/repository"
	"evalux/internal/platform/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// minRatedAnswers is how many candidate answers an interview needs before it
// gets a numeric rating; shorter sessions are recorded as incomplete.
const minRatedAnswers = 3

// fallbackQuestions keeps an interview moving when the AI provider is down
// or unconfigured, indexed by how many questions were already asked.
var fallbackQuestions = []string{
	"Tell me about yourself and your background.",
	"What project are you most proud of, and why?",
	"How do you handle disagreements within a team?",
	"Describe a technical problem you solved recently.",
	"Where do you see yourself growing in the next few years?",
	"Do you have any questions for me?",
}

// InterviewService drives the chat interview. Live sessions sit in Redis
// under a TTL; only finished, rated sessions reach the database.
type InterviewService struct {
	interviewRepo repository.InterviewRepository
	cvRepo        repository.CVRepository
	rdb           *redis.Client
	provider      Completer
}

func NewInterviewService(interviewRepo repository.InterviewRepository, cvRepo repository.CVRepository, rdb *redis.Client, provider Completer) *InterviewService {
	return &InterviewService{interviewRepo: interviewRepo, cvRepo: cvRepo, rdb: rdb, provider: provider}
}

type StartInterviewRequest struct {
	Topic string `json:"topic"`
}

type InterviewReply struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Stage     string `json:"stage"`
}

type InterviewResult struct {
	SessionID string                `json:"session_id"`
	Rating    model.InterviewRating `json:"rating"`
}

type InterviewProgress struct {
	Sessions     []model.InterviewRecord `json:"sessions"`
	AverageScore *float64                `json:"average_score"`
	RatedCount   int                     `json:"rated_count"`
}

func sessionKey(id string) string {
	return "interview:" + id
}

// Start opens a session and returns the interviewer's greeting. Skills from
// the user's latest CV, when present, steer the conversation.
func (s *InterviewService) Start(ctx context.Context, userID string, req StartInterviewRequest) (*InterviewReply, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		topic = "general software engineering"
	}

	var skills []string
	if analysis, err := s.cvRepo.LatestByUser(ctx, userID); err == nil {
		skills = analysis.Result.Skills
	}

	session := &model.InterviewSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Topic:     topic,
		Stage:     "interviewing",
		CVSkills:  skills,
		CreatedAt: time.Now(),
	}

	greeting := fmt.Sprintf("Hello! I'll be your interviewer today. We'll focus on %s. %s", topic, fallbackQuestions[0])
	if len(skills) > 0 {
		greeting = fmt.Sprintf("Hello! I'll be your interviewer today. We'll focus on %s. I see your background includes %s. %s",
			topic, strings.Join(skills, ", "), fallbackQuestions[0])
	}
	session.History = append(session.History, model.InterviewMessage{
		Role: "assistant", Content: greeting, Timestamp: time.Now(),
	})

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return &InterviewReply{SessionID: session.ID, Message: greeting, Stage: session.Stage}, nil
}

// Message records the candidate's answer and produces the next question.
func (s *InterviewService) Message(ctx context.Context, userID, sessionID, content string) (*InterviewReply, error) {
	if strings.TrimSpace(content) == "" {
		return nil, common.ErrBadRequest
	}

	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	session.History = append(session.History, model.InterviewMessage{
		Role: "user", Content: content, Timestamp: time.Now(),
	})

	reply := s.nextQuestion(ctx, session)
	session.History = append(session.History, model.InterviewMessage{
		Role: "assistant", Content: reply, Timestamp: time.Now(),
	})

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return &InterviewReply{SessionID: session.ID, Message: reply, Stage: session.Stage}, nil
}

// End rates the conversation, persists the record and drops the live
// session. The record is written even when rating fails or the interview was
// too short; the transcript is never lost.
func (s *InterviewService) End(ctx context.Context, userID, sessionID string) (*InterviewResult, error) {
	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	rating := s.rate(ctx, session)

	record := &model.InterviewRecord{
		ID:        session.ID,
		UserID:    session.UserID,
		Topic:     session.Topic,
		StartedAt: session.CreatedAt,
		EndedAt:   time.Now(),
		History:   session.History,
		Score:     rating.Score,
		Feedback:  rating,
	}
	if err := s.interviewRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store interview record: %w", err)
	}

	s.rdb.Del(ctx, sessionKey(sessionID))

	return &InterviewResult{SessionID: sessionID, Rating: rating}, nil
}

// Progress lists the user's past interviews with the running average of
// rated sessions.
func (s *InterviewService) Progress(ctx context.Context, userID string) (*InterviewProgress, error) {
	records, err := s.interviewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}

	progress := &InterviewProgress{Sessions: records}
	var sum float64
	for _, rec := range records {
		if rec.Score != nil {
			sum += *rec.Score
			progress.RatedCount++
		}
	}
	if progress.RatedCount > 0 {
		avg := math.Round(sum/float64(progress.RatedCount)*10) / 10
		progress.AverageScore = &avg
	}
	return progress, nil
}

func (s *InterviewService) nextQuestion(ctx context.Context, session *model.InterviewSession) string {
	asked := 0
	for _, msg := range session.History {
		if msg.Role == "assistant" {
			asked++
		}
	}

	if s.provider != nil {
		prompt := buildInterviewPrompt(session)
		reply, err := s.provider.Complete(ctx, prompt, 0.7, 150)
		if err == nil && strings.TrimSpace(reply) != "" {
			return strings.TrimSpace(reply)
		}
		if err != nil {
			log.Printf("AI interviewer failed: %v, using fallback question", err)
		}
	}

	if asked < len(fallbackQuestions) {
		return fallbackQuestions[asked]
	}
	return "Thank you. Is there anything else you would like to add before we wrap up?"
}

func buildInterviewPrompt(session *model.InterviewSession) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional interviewer conducting an interview about %s.\n", session.Topic)
	if len(session.CVSkills) > 0 {
		fmt.Fprintf(&b, "The candidate's CV lists these skills: %s.\n", strings.Join(session.CVSkills, ", "))
	}
	b.WriteString("Conversation so far:\n")
	for _, msg := range session.History {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
	}
	b.WriteString("\nAsk ONE short follow-up interview question. Reply with the question only, no preamble.")
	return b.String()
}

// ratedFeedback is the strict JSON shape the rating prompt asks for.
type ratedFeedback struct {
	Score        float64  `json:"score"`
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Weaknesses   []string `json:"weaknesses"`
	Tips         []string `json:"tips"`
}

func (s *InterviewService) rate(ctx context.Context, session *model.InterviewSession) model.InterviewRating {
	answers := 0
	for _, msg := range session.History {
		if msg.Role == "user" {
			answers++
		}
	}
	if answers < minRatedAnswers {
		return model.InterviewRating{
			Summary:    fmt.Sprintf("Interview ended after %d answer(s); too short to rate.", answers),
			Tips:       []string{"Complete at least a few questions to receive a rating."},
			Incomplete: true,
		}
	}

	if s.provider != nil {
		rating, err := s.rateWithProvider(ctx, session)
		if err == nil {
			return rating
		}
		log.Printf("AI rating failed: %v, using neutral rating", err)
	}

	score := 5.0
	return model.InterviewRating{
		Score:   &score,
		Summary: "Interview completed. Automatic rating was unavailable, a neutral score was assigned.",
		Tips:    []string{"Practice structuring answers with concrete examples."},
	}
}

func (s *InterviewService) rateWithProvider(ctx context.Context, session *model.InterviewSession) (model.InterviewRating, error) {
	var transcript strings.Builder
	for _, msg := range session.History {
		fmt.Fprintf(&transcript, "%s: %s\n", msg.Role, msg.Content)
	}

	prompt := fmt.Sprintf(`Rate this interview about %s on a 0-10 scale.

Return ONLY valid JSON:
{"score": 7.5, "summary": "...", "strengths": ["..."], "improvements": ["..."], "weaknesses": ["..."], "tips": ["..."]}

TRANSCRIPT:
%s`, session.Topic, transcript.String())

	reply, err := s.provider.Complete(ctx, prompt, 0.3, 400)
	if err != nil {
		return model.InterviewRating{}, err
	}

	var parsed ratedFeedback
	if err := json.Unmarshal([]byte(extractJSON(reply)), &parsed); err != nil {
		return model.InterviewRating{}, fmt.Errorf("malformed rating reply: %w", err)
	}

	score := math.Min(10, math.Max(0, parsed.Score))
	rating := model.InterviewRating{
		Score:        &score,
		Summary:      parsed.Summary,
		Strengths:    parsed.Strengths,
		Improvements: parsed.Improvements,
		Weaknesses:   parsed.Weaknesses,
		Tips:         parsed.Tips,
	}
	if rating.Summary == "" {
		rating.Summary = "Interview completed."
	}
	if len(rating.Tips) == 0 {
		rating.Tips = []string{"Practice structuring answers with concrete examples."}
	}
	return rating, nil
}

func (s *InterviewService) saveSession(ctx context.Context, session *model.InterviewSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(session.ID), payload, config.AppConfig.InterviewTTL).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *InterviewService) loadSession(ctx context.Context, userID, sessionID string) (*model.InterviewSession, error) {
	payload, err := s.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("interview session not found or expired: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	session := &model.InterviewSession{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if session.UserID != userID {
		return nil, common.ErrForbidden
	}
	return session, nil
}
