// Package problem reads and checks a word transformation problem:
//
//	add delete change anagram
//	start
//	end
//
// The first line holds the four operation costs, the next two the words.
package problem

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bastiangx/wordcost/internal/utils"
	"github.com/bastiangx/wordcost/pkg/morph"
)

var (
	ErrCostValue       = errors.New("problem: cost is not an integer")
	ErrCostCount       = errors.New("problem: expected four costs")
	ErrNegativeCost    = morph.ErrNegativeCost
	ErrCostTooLarge    = morph.ErrCostTooLarge
	ErrMissingStart    = errors.New("problem: missing start word")
	ErrMissingEnd      = errors.New("problem: missing end word")
	ErrExtraInput      = errors.New("problem: unexpected input after end word")
	ErrWordTooShort    = errors.New("problem: word is too short")
	ErrNotInDictionary = errors.New("problem: word is not in the dictionary")
)

// Problem is one parsed input.
type Problem struct {
	Costs morph.CostModel
	Start string
	End   string
}

// Parse reads a problem from r. Words are trimmed and lowercased. Trailing
// blank lines are tolerated, anything else after the end word is not.
func Parse(r io.Reader) (*Problem, error) {
	sc := bufio.NewScanner(r)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: got 0", ErrCostCount)
	}
	costs, err := ParseCosts(sc.Text())
	if err != nil {
		return nil, err
	}

	p := &Problem{Costs: costs}
	if p.Start, err = nextWord(sc, ErrMissingStart); err != nil {
		return nil, err
	}
	if p.End, err = nextWord(sc, ErrMissingEnd); err != nil {
		return nil, err
	}

	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			return nil, fmt.Errorf("%w: %q", ErrExtraInput, sc.Text())
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseFile opens path and parses it.
func ParseFile(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening problem file: %w", err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParseCosts reads "add delete change anagram" from one line.
func ParseCosts(line string) (morph.CostModel, error) {
	fields := strings.Fields(line)
	vals := make([]int, 0, 4)
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return morph.CostModel{}, fmt.Errorf("%w: %q", ErrCostValue, f)
		}
		vals = append(vals, v)
	}
	if len(vals) != 4 {
		return morph.CostModel{}, fmt.Errorf("%w: got %d", ErrCostCount, len(vals))
	}
	return morph.NewCostModel(vals[0], vals[1], vals[2], vals[3])
}

func nextWord(sc *bufio.Scanner, missing error) (string, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", missing
	}
	w := utils.NormalizeWord(sc.Text())
	if w == "" {
		return "", missing
	}
	return w, nil
}

// Validate checks both words against the length limit and lex.
func (p *Problem) Validate(lex morph.Lexicon) error {
	for _, w := range [...]string{p.Start, p.End} {
		if err := CheckWord(lex, w); err != nil {
			return err
		}
	}
	return nil
}

// CheckWord reports ErrWordTooShort or ErrNotInDictionary for word.
func CheckWord(lex morph.Lexicon, word string) error {
	if !utils.IsLongEnough(word) {
		return fmt.Errorf("%w: %q has %d letters, need %d", ErrWordTooShort, word, len(word), utils.MinWordLength)
	}
	if !lex.Contains(word) {
		return fmt.Errorf("%w: %q", ErrNotInDictionary, word)
	}
	return nil
}

// Solve runs the search for p against lex.
func (p *Problem) Solve(lex morph.Lexicon, options ...morph.Option) morph.Result {
	return morph.Solve(lex, p.Costs, p.Start, p.End, options...)
}
