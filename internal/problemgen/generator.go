package problemgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"evalux/internal/domain/model"
)

// Completer is the one call the generator needs from a generative text
// provider. Absence (nil provider) and failure are equivalent fallback
// triggers, never distinct error paths.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
}

// difficultyTiers and problemTypes are sampled per call to bias variety in
// the generated problems.
var difficultyTiers = []string{
	"easy beginner level",
	"medium difficulty requiring loops",
	"moderate difficulty with data structures",
	"challenging problem with algorithms",
}

var problemTypes = []string{
	"mathematical calculation",
	"string manipulation",
	"list/array operations",
	"pattern recognition",
	"sorting or searching",
	"logical puzzle",
}

type Generator struct {
	provider Completer
}

func NewGenerator(provider Completer) *Generator {
	return &Generator{provider: provider}
}

// Generate produces a self-contained zero-input coding problem. The provider
// path is validated and may have its expected answer overridden; any provider
// trouble degrades silently to the curated catalog.
func (g *Generator) Generate(ctx context.Context, skills []string) model.CodingProblem {
	if g.provider != nil {
		problem, err := g.fromProvider(ctx, skills)
		if err == nil {
			return problem
		}
		log.Printf("AI problem generation failed: %v, falling back to catalog", err)
	}
	return g.fromCatalog()
}

// generatedProblem is the strict JSON shape the provider must reply with.
type generatedProblem struct {
	Title                 string `json:"title"`
	Description           string `json:"description"`
	ExpectedAnswer        string `json:"expected_answer"`
	Hint                  string `json:"hint"`
	Difficulty            string `json:"difficulty"`
	StarterCodeLua        string `json:"starter_code_lua"`
	StarterCodePython     string `json:"starter_code_python"`
	StarterCodeJavascript string `json:"starter_code_javascript"`
}

func (g *Generator) fromProvider(ctx context.Context, skills []string) (model.CodingProblem, error) {
	difficulty := difficultyTiers[rand.Intn(len(difficultyTiers))]
	problemType := problemTypes[rand.Intn(len(problemTypes))]

	prompt := buildPrompt(difficulty, problemType, skills)

	reply, err := g.provider.Complete(ctx, prompt, 0.9, 1000)
	if err != nil {
		return model.CodingProblem{}, err
	}

	var parsed generatedProblem
	if err := json.Unmarshal([]byte(stripFences(reply)), &parsed); err != nil {
		return model.CodingProblem{}, fmt.Errorf("malformed provider reply: %w", err)
	}
	if parsed.Title == "" || parsed.Description == "" || parsed.ExpectedAnswer == "" {
		return model.CodingProblem{}, errors.New("provider reply missing required fields")
	}

	problem := model.CodingProblem{
		Title:          parsed.Title,
		Description:    parsed.Description,
		Difficulty:     parsed.Difficulty,
		ExpectedAnswer: parsed.ExpectedAnswer,
		Hint:           parsed.Hint,
		StarterCode: map[string]string{
			"lua":        parsed.StarterCodeLua,
			"python":     parsed.StarterCodePython,
			"javascript": parsed.StarterCodeJavascript,
		},
		AIGenerated: true,
	}

	ValidateExpectedAnswer(&problem)
	return problem, nil
}

func (g *Generator) fromCatalog() model.CodingProblem {
	problem := fallbackCatalog[rand.Intn(len(fallbackCatalog))]

	// Copy the starter map so callers can never mutate the catalog entry.
	starter := make(map[string]string, len(problem.StarterCode))
	for lang, code := range problem.StarterCode {
		starter[lang] = code
	}
	problem.StarterCode = starter
	problem.AIGenerated = false

	log.Printf("Fallback problem: %s [%s]", problem.Title, problem.Difficulty)
	return problem
}

func buildPrompt(difficulty, problemType string, skills []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a UNIQUE %s coding problem about %s.\n\n", difficulty, problemType)
	fmt.Fprintf(&b, "TIMESTAMP: %d (use this to ensure variety)\n\n", time.Now().Unix())
	if len(skills) > 0 {
		fmt.Fprintf(&b, "CANDIDATE SKILLS: %s\n\n", strings.Join(skills, ", "))
	}
	b.WriteString(`CRITICAL RULES:
- NO parameters in the function - the function takes NO INPUT
- Data must be HARDCODED in the problem description
- Make it DIFFERENT from simple counting problems
- Include some logic or calculation

PROBLEM VARIETY IDEAS:
- "Find the sum of all prime numbers between 1 and 20"
- "Reverse the string 'hello world' and return it"
- "Find the second largest number in [15, 8, 23, 42, 4, 16]"
- "Count how many palindromes are in ['racecar', 'hello', 'level', 'world']"
- "Calculate the factorial of 5"

AVOID:
- Simple counting like "count letters in hello"
- Basic addition like "5 + 3"

Return ONLY valid JSON:
{
  "title": "Descriptive Title (5-8 words)",
  "description": "Clear problem statement with specific data. Be precise about what to return.",
  "expected_answer": "the correct answer as string",
  "hint": "Helpful hint about the approach (optional)",
  "difficulty": "` + difficulty + `",
  "starter_code_lua": "function solution()\n    -- Write your code here\nend",
  "starter_code_python": "def solution():\n    # Write your code here\n    pass",
  "starter_code_javascript": "function solution() {\n    // Write your code here\n}"
}`)
	return b.String()
}

// stripFences removes an optional markdown code fence around the reply.
func stripFences(s string) string {
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	} else if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}
	return strings.TrimSpace(s)
}
