// Package cli is a line mode front-end for trying transformations by hand.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/wordcost/internal/utils"
	"github.com/bastiangx/wordcost/pkg/morph"
	"github.com/bastiangx/wordcost/pkg/problem"
	"github.com/charmbracelet/log"
)

// ErrUsage is logged for lines that are neither a query nor a command.
var ErrUsage = errors.New(`expected "start end", "costs add delete change anagram" or "words prefix"`)

// maxListed caps the output of the words command.
const maxListed = 20

var errListFull = errors.New("list full")

// Lexicon is a searchable dictionary that can also list words by prefix.
type Lexicon interface {
	morph.Lexicon
	Visit(prefix string, fn func(word string) error) error
}

// InputHandler reads queries from a reader and prints their cost.
type InputHandler struct {
	lex          Lexicon
	searcher     *morph.Searcher
	options      []morph.Option
	showStats    bool
	requestCount int
}

// NewInputHandler creates a handler searching lex with costs.
func NewInputHandler(lex Lexicon, costs morph.CostModel, showStats bool, options ...morph.Option) *InputHandler {
	return &InputHandler{
		lex:       lex,
		searcher:  morph.NewSearcher(lex, costs, options...),
		options:   options,
		showStats: showStats,
	}
}

// Start runs the loop on stdin/stdout until EOF.
func (h *InputHandler) Start() error {
	log.Print("wordcost CLI")
	log.Printf("costs: %s", h.searcher.Costs())
	log.Print(`type "start end" and press Enter, "costs a d c g" to change costs (Ctrl+D to exit):`)
	return h.Run(os.Stdin, os.Stdout)
}

// Run processes every line of r, writing results to w. It returns nil at
// EOF or after a quit command.
func (h *InputHandler) Run(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if err := h.handleInput(line, w); err != nil {
			log.Error(err)
		}
	}
	return sc.Err()
}

func (h *InputHandler) handleInput(line string, w io.Writer) error {
	fields := strings.Fields(line)
	if fields[0] == "costs" {
		costs, err := problem.ParseCosts(strings.Join(fields[1:], " "))
		if err != nil {
			return err
		}
		h.searcher = morph.NewSearcher(h.lex, costs, h.options...)
		fmt.Fprintf(w, "costs: %s\n", costs)
		return nil
	}
	if fields[0] == "words" && len(fields) == 2 {
		return h.listWords(utils.NormalizeWord(fields[1]), w)
	}
	if len(fields) != 2 {
		return ErrUsage
	}

	start, end := utils.NormalizeWord(fields[0]), utils.NormalizeWord(fields[1])
	for _, word := range [...]string{start, end} {
		if !utils.IsValidWord(word) {
			return fmt.Errorf("%q: letters a-z only", word)
		}
		if err := problem.CheckWord(h.lex, word); err != nil {
			return err
		}
	}

	h.requestCount++
	t0 := time.Now()
	res := h.searcher.Search(start, end)
	elapsed := time.Since(t0)
	log.Debug("Searched", "start", start, "end", end, "stats", fmt.Sprintf("%+v", res.Stats))

	if !res.Found {
		fmt.Fprintf(w, "%s -> %s: no transformation\n", start, end)
	} else {
		fmt.Fprintf(w, "%s -> %s: %d\n", start, end, res.Cost)
	}
	if h.showStats {
		fmt.Fprintf(w, "  expanded %d, queued %d, took %v\n", res.Stats.Expanded, res.Stats.Pushed, elapsed)
	}
	return nil
}

// listWords prints up to maxListed dictionary words starting with prefix.
func (h *InputHandler) listWords(prefix string, w io.Writer) error {
	var words []string
	err := h.lex.Visit(prefix, func(word string) error {
		if len(words) == maxListed {
			return errListFull
		}
		words = append(words, word)
		return nil
	})
	if err != nil && !errors.Is(err, errListFull) {
		return err
	}
	if len(words) == 0 {
		fmt.Fprintf(w, "no words starting with %q\n", prefix)
		return nil
	}
	fmt.Fprintln(w, strings.Join(words, " "))
	return nil
}
