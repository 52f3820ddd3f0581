package utils

import (
	"strings"
)

// DuplicateFilter remembers words it has already let through
type DuplicateFilter struct {
	seenWords map[string]struct{}
}

// NewDuplicateFilter creates a filter, optionally pre-seeded with words to exclude
func NewDuplicateFilter(exclude ...string) *DuplicateFilter {
	seenWords := make(map[string]struct{}, len(exclude))
	for _, w := range exclude {
		seenWords[strings.ToLower(w)] = struct{}{}
	}
	return &DuplicateFilter{seenWords: seenWords}
}

// ShouldInclude reports whether word is new (case-insensitively) and marks it seen
func (f *DuplicateFilter) ShouldInclude(word string) bool {
	lowerWord := strings.ToLower(word)
	if _, ok := f.seenWords[lowerWord]; ok {
		return false
	}
	f.seenWords[lowerWord] = struct{}{}
	return true
}

// Len returns how many distinct words were seen
func (f *DuplicateFilter) Len() int {
	return len(f.seenWords)
}
