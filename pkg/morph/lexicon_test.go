package morph

import (
	"slices"
	"strings"
)

// testLexicon is a minimal Lexicon for the engine tests.
type testLexicon struct {
	words   map[string]bool
	classes map[string][]string
}

func newTestLexicon(words ...string) *testLexicon {
	l := &testLexicon{words: make(map[string]bool), classes: make(map[string][]string)}
	for _, w := range words {
		if l.words[w] {
			continue
		}
		l.words[w] = true
		k := sortedLetters(w)
		l.classes[k] = append(l.classes[k], w)
	}
	return l
}

func sortedLetters(w string) string {
	b := []byte(w)
	slices.Sort(b)
	return string(b)
}

func (l *testLexicon) Contains(word string) bool { return l.words[word] }

func (l *testLexicon) AnagramsOf(word string) []string {
	return l.classes[sortedLetters(strings.ToLower(word))]
}

func (l *testLexicon) list() []string {
	out := make([]string, 0, len(l.words))
	for w := range l.words {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}
