package utils

import (
	"strings"
)

// MinWordLength is the shortest word allowed anywhere in a transformation
const MinWordLength = 3

// NormalizeWord trims whitespace and lowercases
func NormalizeWord(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsValidWord checks that s is non-empty and made of ASCII a-z only
func IsValidWord(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// IsLongEnough reports whether s meets MinWordLength
func IsLongEnough(s string) bool {
	return len(s) >= MinWordLength
}
