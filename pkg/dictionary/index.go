/*
Package dictionary holds the word list the search runs against.

A Dictionary is built once and never changes. Words live in a patricia trie
for membership tests and prefix walks, and are grouped by anagram key (the
word's letters in ascending order) so every anagram of a word can be listed
without scanning the whole list.

Dictionaries are loaded from plain text word lists or from binary chunk
files, see Load.
*/
package dictionary

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bastiangx/wordcost/internal/utils"
	"github.com/cespare/xxhash/v2"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Dictionary is an immutable set of lowercase words.
type Dictionary struct {
	trie    *patricia.Trie
	words   []string
	classes map[string][]string
	sum     string
}

// New builds a Dictionary. Words are lowercased; empty strings and
// duplicates are dropped, the first occurrence keeps its position.
func New(words []string) *Dictionary {
	d := &Dictionary{
		trie:    patricia.NewTrie(),
		words:   make([]string, 0, len(words)),
		classes: make(map[string][]string),
	}
	seen := utils.NewDuplicateFilter()
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || !seen.ShouldInclude(w) {
			continue
		}
		key := AnagramKey(w)
		d.trie.Insert(patricia.Prefix(w), key)
		d.words = append(d.words, w)
		d.classes[key] = append(d.classes[key], w)
	}
	d.sum = fingerprint(d.words)
	return d
}

// fingerprint hashes the sorted word set, so load order does not matter.
func fingerprint(words []string) string {
	sorted := slices.Clone(words)
	slices.Sort(sorted)
	h := xxhash.New()
	for _, w := range sorted {
		h.WriteString(w)
		h.WriteString("\n")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// AnagramKey returns the letters of word, lowercased and sorted.
func AnagramKey(word string) string {
	b := []byte(strings.ToLower(word))
	slices.Sort(b)
	return string(b)
}

// Contains reports whether word is in the dictionary, ignoring case.
func (d *Dictionary) Contains(word string) bool {
	return d.trie.Get(patricia.Prefix(strings.ToLower(word))) != nil
}

// AnagramsOf returns every word sharing word's letter multiset, word itself
// included when present, in load order.
func (d *Dictionary) AnagramsOf(word string) []string {
	return slices.Clone(d.classes[AnagramKey(word)])
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int { return len(d.words) }

// Fingerprint identifies the word set. Two dictionaries holding the same
// words share a fingerprint whatever order they were loaded in.
func (d *Dictionary) Fingerprint() string { return d.sum }

// Classes returns the number of distinct anagram classes.
func (d *Dictionary) Classes() int { return len(d.classes) }

// Words returns the words in load order.
func (d *Dictionary) Words() []string { return slices.Clone(d.words) }

// Visit calls fn for each word starting with prefix, in trie order.
// A non-nil error from fn stops the walk and is returned.
func (d *Dictionary) Visit(prefix string, fn func(word string) error) error {
	return d.trie.VisitSubtree(patricia.Prefix(strings.ToLower(prefix)), func(p patricia.Prefix, _ patricia.Item) error {
		return fn(string(p))
	})
}
