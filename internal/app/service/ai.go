package service

import (
	"context"
	"strings"
)

// Completer is the single call the AI-backed services need from a generative
// text provider. A nil Completer is a supported configuration: every caller
// has a deterministic fallback path.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
}

// extractJSON strips an optional markdown code fence so the reply can be fed
// to json.Unmarshal. Providers wrap JSON in fences often enough that this is
// cheaper than re-prompting.
func extractJSON(s string) string {
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
