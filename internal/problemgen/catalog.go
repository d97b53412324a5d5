package problemgen

import "evalux/internal/domain/model"

func starters(lua, python, javascript string) map[string]string {
	return map[string]string{
		"lua":        lua,
		"python":     python,
		"javascript": javascript,
	}
}

// fallbackCatalog is served whenever the generative provider is unconfigured,
// errors, or replies with garbage. Every expected answer here is verified by
// hand; entries span the easy/medium/hard tiers.
var fallbackCatalog = []model.CodingProblem{
	{
		Title:          "Sum Even Numbers in Range",
		Description:    "Find the sum of all even numbers from 1 to 20. Return the sum.",
		ExpectedAnswer: "110",
		Hint:           "Even numbers are 2, 4, 6, 8... Use a loop or a formula",
		Difficulty:     "easy",
		StarterCode: starters(
			"function solution()\n    -- Sum even numbers 1-20\nend",
			"def solution():\n    # Sum even numbers 1-20\n    pass",
			"function solution() {\n    // Sum even numbers 1-20\n}",
		),
	},
	{
		Title:          "Reverse a String",
		Description:    "Reverse the string 'Python' and return it. Result should be 'nohtyP'.",
		ExpectedAnswer: "nohtyP",
		Hint:           "Build the string back to front, or use a reverse helper",
		Difficulty:     "easy",
		StarterCode: starters(
			"function solution()\n    -- Reverse 'Python'\nend",
			"def solution():\n    # Reverse 'Python'\n    pass",
			"function solution() {\n    // Reverse 'Python'\n}",
		),
	},
	{
		Title:          "Find Second Largest Number",
		Description:    "Find the second largest number in the list [15, 8, 23, 42, 4, 16]. Return that number.",
		ExpectedAnswer: "23",
		Hint:           "Sort the list or track the two largest values",
		Difficulty:     "medium",
		StarterCode: starters(
			"function solution()\n    -- Find second largest in {15, 8, 23, 42, 4, 16}\nend",
			"def solution():\n    # Find second largest in [15, 8, 23, 42, 4, 16]\n    pass",
			"function solution() {\n    // Find second largest\n}",
		),
	},
	{
		Title:          "Count Palindromes in List",
		Description:    "Count how many palindromes are in ['racecar', 'hello', 'level', 'world', 'radar']. Return the count.",
		ExpectedAnswer: "3",
		Hint:           "A palindrome reads the same forwards and backwards",
		Difficulty:     "medium",
		StarterCode: starters(
			"function solution()\n    -- Count palindromes\nend",
			"def solution():\n    # Count palindromes\n    pass",
			"function solution() {\n    // Count palindromes\n}",
		),
	},
	{
		Title:          "Calculate Factorial",
		Description:    "Calculate the factorial of 6. Factorial means 6 x 5 x 4 x 3 x 2 x 1. Return the result.",
		ExpectedAnswer: "720",
		Hint:           "Use a loop to multiply numbers from 1 to 6",
		Difficulty:     "medium",
		StarterCode: starters(
			"function solution()\n    -- Calculate 6!\nend",
			"def solution():\n    # Calculate 6!\n    pass",
			"function solution() {\n    // Calculate 6!\n}",
		),
	},
	{
		Title:          "Find Missing Number in Sequence",
		Description:    "Find the missing number in the sequence [1, 2, 3, 5, 6, 7, 8]. One number between 1-8 is missing. Return it.",
		ExpectedAnswer: "4",
		Hint:           "The sum of 1-8 should be 36. Find the difference.",
		Difficulty:     "medium",
		StarterCode: starters(
			"function solution()\n    -- Find missing number\nend",
			"def solution():\n    # Find missing number\n    pass",
			"function solution() {\n    // Find missing number\n}",
		),
	},
	{
		Title:          "Fibonacci Number at Position",
		Description:    "Find the Fibonacci number at position 7. Fibonacci sequence: 0, 1, 1, 2, 3, 5, 8, 13... Return the 7th number.",
		ExpectedAnswer: "8",
		Hint:           "Each number is the sum of the previous two",
		Difficulty:     "medium",
		StarterCode: starters(
			"function solution()\n    -- Find 7th Fibonacci number\nend",
			"def solution():\n    # Find 7th Fibonacci number\n    pass",
			"function solution() {\n    // Find 7th Fibonacci number\n}",
		),
	},
	{
		Title:          "Sum of Prime Numbers",
		Description:    "Find the sum of all prime numbers between 1 and 15. Prime numbers are 2, 3, 5, 7, 11, 13. Return the sum.",
		ExpectedAnswer: "41",
		Hint:           "Check each number if it's only divisible by 1 and itself",
		Difficulty:     "hard",
		StarterCode: starters(
			"function solution()\n    -- Sum primes 1-15\nend",
			"def solution():\n    # Sum primes 1-15\n    pass",
			"function solution() {\n    // Sum primes 1-15\n}",
		),
	},
	{
		Title:          "Check Palindrome Phrase",
		Description:    "Check if 'Was it a car or a cat I saw' is a palindrome when you ignore spaces and make it lowercase. Return true or false.",
		ExpectedAnswer: "True",
		Hint:           "Remove spaces, convert to lowercase, then compare with the reverse",
		Difficulty:     "hard",
		StarterCode: starters(
			"function solution()\n    -- Check if palindrome\nend",
			"def solution():\n    # Check if palindrome\n    pass",
			"function solution() {\n    // Check if palindrome\n}",
		),
	},
	{
		Title:          "Find Duplicate in List",
		Description:    "Find the number that appears twice in [1, 2, 3, 4, 5, 3, 6, 7]. Return the duplicate number.",
		ExpectedAnswer: "3",
		Hint:           "Track which numbers you have already seen",
		Difficulty:     "medium",
		StarterCode: starters(
			"function solution()\n    -- Find duplicate\nend",
			"def solution():\n    # Find duplicate\n    pass",
			"function solution() {\n    // Find duplicate\n}",
		),
	},
	{
		Title:          "Vowel to Consonant Difference",
		Description:    "In the word 'education', count vowels and consonants. Return the difference (vowels - consonants).",
		ExpectedAnswer: "1",
		Hint:           "Vowels: a,e,i,o,u. Count both and subtract.",
		Difficulty:     "medium",
		StarterCode: starters(
			"function solution()\n    -- Count difference\nend",
			"def solution():\n    # Count difference\n    pass",
			"function solution() {\n    // Count difference\n}",
		),
	},
	{
		Title:          "Find Most Frequent Character",
		Description:    "Find the most frequent character in 'mississippi'. If there is a tie, return the one that appears first. Return the character.",
		ExpectedAnswer: "i",
		Hint:           "Count occurrences of each letter",
		Difficulty:     "medium",
		StarterCode: starters(
			"function solution()\n    -- Find most frequent char\nend",
			"def solution():\n    # Find most frequent char\n    pass",
			"function solution() {\n    // Find most frequent char\n}",
		),
	},
}
