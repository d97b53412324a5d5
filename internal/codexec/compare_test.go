package codexec

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		actual   string
		expected string
		want     bool
	}{
		{"exact match", "42", "42", true},
		{"exact match case-insensitive", "Hello", "hello", true},
		{"whitespace stripped", "  4 2\n", "42", true},
		{"numeric tolerance", "42", "42.0", true},
		{"numeric tolerance decimals", "2.504", "2.50", true},
		{"numeric mismatch", "100", "10", false},
		{"numeric mismatch no containment fallback", "10", "100", false},
		{"boolean synonyms true", "True", "yes", true},
		{"boolean synonyms false", "0", "no", true},
		{"boolean mismatch", "true", "no", false},
		{"containment", "The answer is 12", "12", true},
		{"no match", "cat", "dog", false},
		{"empty expected never contains", "anything", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.actual, tt.expected); got != tt.want {
				t.Errorf("Compare(%q, %q) = %v, want %v", tt.actual, tt.expected, got, tt.want)
			}
		})
	}
}
