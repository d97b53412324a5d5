package problemgen

import (
	"testing"

	"evalux/internal/domain/model"
)

func problemWith(description, expected string) *model.CodingProblem {
	return &model.CodingProblem{
		Title:          "test",
		Description:    description,
		ExpectedAnswer: expected,
	}
}

func TestValidateAverageOverridesWrongAnswer(t *testing.T) {
	p := problemWith("Calculate the average of [1, 2, 3, 4]. Return it with two decimals.", "3.00")
	ValidateExpectedAnswer(p)
	if p.ExpectedAnswer != "2.50" {
		t.Errorf("ExpectedAnswer = %q, want %q", p.ExpectedAnswer, "2.50")
	}
}

func TestValidateAverageKeepsAnswerWithinTolerance(t *testing.T) {
	p := problemWith("Find the mean of [2, 4, 6].", "4.0")
	ValidateExpectedAnswer(p)
	if p.ExpectedAnswer != "4.0" {
		t.Errorf("ExpectedAnswer = %q, want untouched %q", p.ExpectedAnswer, "4.0")
	}
}

func TestValidateAverageOverridesUnparsableClaim(t *testing.T) {
	p := problemWith("Compute the average of [1.5, 2.5].", "about two")
	ValidateExpectedAnswer(p)
	if p.ExpectedAnswer != "2.00" {
		t.Errorf("ExpectedAnswer = %q, want %q", p.ExpectedAnswer, "2.00")
	}
}

func TestValidateRangeSum(t *testing.T) {
	tests := []struct {
		name        string
		description string
		claimed     string
		want        string
	}{
		{"plain sum", "Find the sum of all numbers between 1 and 10.", "54", "55"},
		{"even sum", "Find the sum of all even numbers between 1 and 20.", "0", "110"},
		{"odd sum", "Find the sum of all odd numbers between 1 and 10.", "24", "25"},
		{"prime sum", "Find the sum of all prime numbers between 1 and 15.", "40", "41"},
		{"from-to phrasing", "Compute the sum of integers from 1 to 5.", "14", "15"},
		{"correct claim kept", "Find the sum of all numbers between 1 and 4.", "10", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := problemWith(tt.description, tt.claimed)
			ValidateExpectedAnswer(p)
			if p.ExpectedAnswer != tt.want {
				t.Errorf("ExpectedAnswer = %q, want %q", p.ExpectedAnswer, tt.want)
			}
		})
	}
}

func TestValidateExtremum(t *testing.T) {
	tests := []struct {
		name        string
		description string
		claimed     string
		want        string
	}{
		{"second largest", "Find the second largest number in [15, 8, 23, 42, 4, 16].", "42", "23"},
		{"largest", "Find the largest number in [3, 9, 1].", "3", "9"},
		{"maximum", "Return the maximum of [-5, -2, -9].", "-9", "-2"},
		{"smallest", "Find the smallest number in [7, 2, 11].", "7", "2"},
		{"second largest with one distinct value", "Find the second largest number in [5, 5, 5].", "0", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := problemWith(tt.description, tt.claimed)
			ValidateExpectedAnswer(p)
			if p.ExpectedAnswer != tt.want {
				t.Errorf("ExpectedAnswer = %q, want %q", p.ExpectedAnswer, tt.want)
			}
		})
	}
}

func TestValidateLeavesUnrecognizedArchetypesAlone(t *testing.T) {
	p := problemWith("Reverse the string 'hello world' and return it.", "dlrow olleh")
	ValidateExpectedAnswer(p)
	if p.ExpectedAnswer != "dlrow olleh" {
		t.Errorf("ExpectedAnswer = %q, want untouched", p.ExpectedAnswer)
	}
}

func TestValidateExtremumGivesUpOnNonIntegerList(t *testing.T) {
	p := problemWith("Find the largest number in [1.5, 2.5, 3.5].", "whatever")
	ValidateExpectedAnswer(p)
	if p.ExpectedAnswer != "whatever" {
		t.Errorf("ExpectedAnswer = %q, want untouched on unparsable list", p.ExpectedAnswer)
	}
}

func TestIsPrime(t *testing.T) {
	primes := []int{2, 3, 5, 7, 11, 13}
	for _, n := range primes {
		if !isPrime(n) {
			t.Errorf("isPrime(%d) = false, want true", n)
		}
	}
	for _, n := range []int{-3, 0, 1, 4, 9, 15} {
		if isPrime(n) {
			t.Errorf("isPrime(%d) = true, want false", n)
		}
	}
}
