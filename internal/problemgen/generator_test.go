package problemgen

import (
	"context"
	"errors"
	"testing"
)

type stubCompleter struct {
	reply string
	err   error
}

func (s stubCompleter) Complete(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	return s.reply, s.err
}

func TestGenerateFallsBackWithoutProvider(t *testing.T) {
	g := NewGenerator(nil)
	p := g.Generate(context.Background(), nil)

	if p.AIGenerated {
		t.Error("catalog problem flagged as AI-generated")
	}
	if p.Title == "" || p.Description == "" || p.ExpectedAnswer == "" {
		t.Errorf("catalog problem incomplete: %+v", p)
	}
	if len(p.StarterCode) == 0 {
		t.Error("catalog problem has no starter code")
	}
}

func TestGenerateFallsBackOnProviderError(t *testing.T) {
	g := NewGenerator(stubCompleter{err: errors.New("provider down")})
	p := g.Generate(context.Background(), []string{"go", "sql"})

	if p.AIGenerated {
		t.Error("fallback problem flagged as AI-generated")
	}
	if p.ExpectedAnswer == "" {
		t.Error("fallback problem has no expected answer")
	}
}

func TestGenerateFallsBackOnMalformedReply(t *testing.T) {
	g := NewGenerator(stubCompleter{reply: "Sure! Here is a problem for you."})
	p := g.Generate(context.Background(), nil)

	if p.AIGenerated {
		t.Error("fallback problem flagged as AI-generated")
	}
}

func TestGenerateParsesFencedProviderReply(t *testing.T) {
	g := NewGenerator(stubCompleter{reply: "```json\n" + `{
  "title": "Sum Of Squares Up To Five",
  "description": "Compute the sum of the squares of 1 through 5. Return the sum.",
  "expected_answer": "55",
  "hint": "1 + 4 + 9 + 16 + 25",
  "difficulty": "easy beginner level",
  "starter_code_lua": "function solution()\nend",
  "starter_code_python": "def solution():\n    pass",
  "starter_code_javascript": "function solution() {\n}"
}` + "\n```"})

	p := g.Generate(context.Background(), []string{"math"})

	if !p.AIGenerated {
		t.Error("provider problem not flagged as AI-generated")
	}
	if p.Title != "Sum Of Squares Up To Five" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.ExpectedAnswer != "55" {
		t.Errorf("ExpectedAnswer = %q, want %q", p.ExpectedAnswer, "55")
	}
	if p.StarterCode["lua"] != "function solution()\nend" {
		t.Errorf("StarterCode[lua] = %q", p.StarterCode["lua"])
	}
}

func TestGenerateOverridesWrongProviderAnswer(t *testing.T) {
	g := NewGenerator(stubCompleter{reply: `{
  "title": "Sum Of Evens In A Range",
  "description": "Find the sum of all even numbers between 1 and 10. Return the sum.",
  "expected_answer": "99",
  "hint": "",
  "difficulty": "easy beginner level",
  "starter_code_lua": "function solution()\nend",
  "starter_code_python": "def solution():\n    pass",
  "starter_code_javascript": "function solution() {\n}"
}`})

	p := g.Generate(context.Background(), nil)

	if !p.AIGenerated {
		t.Error("provider problem not flagged as AI-generated")
	}
	if p.ExpectedAnswer != "30" {
		t.Errorf("ExpectedAnswer = %q, want corrected %q", p.ExpectedAnswer, "30")
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"noise before ```json\n{\"a\":1}\n``` noise after", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := stripFences(tt.in); got != tt.want {
			t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
