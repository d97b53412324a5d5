package codexec

import (
	"math"
	"strconv"
	"strings"
)

// numericTolerance absorbs floating-point formatting differences such as
// "42" vs "42.0".
const numericTolerance = 0.01

var (
	trueWords  = map[string]bool{"true": true, "1": true, "yes": true}
	falseWords = map[string]bool{"false": true, "0": true, "no": true}
)

// Compare judges whether an actual output satisfies the expected answer.
// Strategies are ordered, first match wins:
//
//  1. whitespace-stripped, case-insensitive exact equality
//  2. numeric equality within tolerance
//  3. boolean synonyms (true/1/yes, false/0/no)
//  4. expected contained in actual ("The answer is 12" vs "12")
//
// Numeric tolerance runs before containment on purpose: containment alone
// would accept "10" inside "100".
func Compare(actual, expected string) bool {
	actualClean := normalize(actual)
	expectedClean := normalize(expected)

	if strings.EqualFold(actualClean, expectedClean) {
		return true
	}

	actualNum, errA := strconv.ParseFloat(actualClean, 64)
	expectedNum, errB := strconv.ParseFloat(expectedClean, 64)
	if errA == nil && errB == nil {
		return math.Abs(actualNum-expectedNum) < numericTolerance
	}

	actualLower := strings.ToLower(actualClean)
	expectedLower := strings.ToLower(expectedClean)
	if trueWords[actualLower] && trueWords[expectedLower] {
		return true
	}
	if falseWords[actualLower] && falseWords[expectedLower] {
		return true
	}

	if expectedClean != "" && strings.Contains(actualClean, expectedClean) {
		return true
	}

	return false
}

// normalize trims and removes every internal space, tab, newline and
// carriage return.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(" ", "", "\t", "", "\n", "", "\r", "")
	return replacer.Replace(s)
}
