package problem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/wordcost/pkg/dictionary"
	"github.com/bastiangx/wordcost/pkg/morph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p, err := Parse(strings.NewReader("1 2 3 4\n  Cat \nDOG\n\n"))
	require.NoError(t, err)
	assert.Equal(t, morph.CostModel{Add: 1, Delete: 2, Change: 3, Anagram: 4}, p.Costs)
	assert.Equal(t, "cat", p.Start)
	assert.Equal(t, "dog", p.End)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrCostCount},
		{"three costs", "1 2 3\ncat\ndog\n", ErrCostCount},
		{"five costs", "1 2 3 4 5\ncat\ndog\n", ErrCostCount},
		{"not a number", "1 2 x 4\ncat\ndog\n", ErrCostValue},
		{"negative", "1 -2 3 4\ncat\ndog\n", ErrNegativeCost},
		{"too large", "1 1 1 9223372036854775807\ncat\ndog\n", ErrCostTooLarge},
		{"no start", "1 2 3 4\n", ErrMissingStart},
		{"blank start", "1 2 3 4\n   \ndog\n", ErrMissingStart},
		{"no end", "1 2 3 4\ncat\n", ErrMissingEnd},
		{"extra line", "1 2 3 4\ncat\ndog\nbat\n", ErrExtraInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 1 1 5\ncat\nbat\n"), 0o644))

	p, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bat", p.End)

	_, err = ParseFile(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	dict := dictionary.New([]string{"cat", "bat", "at"})

	tests := []struct {
		name       string
		start, end string
		want       error
	}{
		{"ok", "cat", "bat", nil},
		{"short start", "at", "bat", ErrWordTooShort},
		{"short end", "cat", "at", ErrWordTooShort},
		{"unknown start", "cow", "bat", ErrNotInDictionary},
		{"unknown end", "cat", "cow", ErrNotInDictionary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Problem{Start: tt.start, End: tt.end}
			err := p.Validate(dict)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSolve(t *testing.T) {
	dict := dictionary.New([]string{"cat", "cats", "bat", "rat"})
	p, err := Parse(strings.NewReader("1 1 1 5\ncat\nbat\n"))
	require.NoError(t, err)
	require.NoError(t, p.Validate(dict))

	res := p.Solve(dict)
	assert.True(t, res.Found)
	assert.Equal(t, 1, res.Value())
}
