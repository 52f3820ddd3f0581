package morph

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrUnknownHeuristic is returned by HeuristicByName for unrecognised names.
var ErrUnknownHeuristic = errors.New("morph: unknown heuristic")

// Heuristic names accepted by HeuristicByName.
const (
	HeuristicAdmissible = "admissible"
	HeuristicClassic    = "classic"
)

// Lexicon is the dictionary view the search needs.
type Lexicon interface {
	// Contains reports whether word is a dictionary word.
	Contains(word string) bool
	// AnagramsOf returns every dictionary word with the same letters as word.
	AnagramsOf(word string) []string
}

// Options configures a Searcher.
type Options struct {
	Heuristic  Heuristic
	EarlyBreak bool
	Logger     *log.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// DefaultOptions uses the admissible Estimate with the early break enabled.
func DefaultOptions() Options {
	return Options{Heuristic: Estimate, EarlyBreak: true}
}

// WithHeuristic replaces the estimate used to order the frontier.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) {
		if h != nil {
			o.Heuristic = h
		}
	}
}

// WithEarlyBreak toggles stopping the loop once the cheapest popped word
// costs more than the incumbent solution.
func WithEarlyBreak(enabled bool) Option {
	return func(o *Options) { o.EarlyBreak = enabled }
}

// WithLogger traces every expansion and solution at debug level.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// HeuristicByName maps a configuration name to a Heuristic. The empty
// name selects the admissible estimate.
func HeuristicByName(name string) (Heuristic, error) {
	switch name {
	case "", HeuristicAdmissible:
		return Estimate, nil
	case HeuristicClassic:
		return EstimateClassic, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
}

// Stats describes the work done by one search.
type Stats struct {
	Expanded   int
	Pushed     int
	Stale      int
	EarlyBreak bool
	Generated  [len(Ops)]int
}

// Result is the outcome of a search. Cost is meaningful only when Found.
type Result struct {
	Found bool
	Cost  int
	Stats Stats
}

// Value returns the cost, or -1 when no transformation exists.
func (r Result) Value() int {
	if !r.Found {
		return -1
	}
	return r.Cost
}

// Searcher runs searches against one dictionary and cost model. Each call
// to Search owns its own state, so a Searcher may be shared.
type Searcher struct {
	lex   Lexicon
	costs CostModel
	opts  Options
	err   error
}

// NewSearcher creates a Searcher. Costs that fail CostModel.Validate make
// every search come back not found; use NewCostModel to catch them early.
func NewSearcher(lex Lexicon, costs CostModel, options ...Option) *Searcher {
	opts := DefaultOptions()
	for _, o := range options {
		o(&opts)
	}
	return &Searcher{lex: lex, costs: costs, opts: opts, err: costs.Validate()}
}

// Costs returns the cost model the searcher was built with.
func (s *Searcher) Costs() CostModel { return s.costs }

// Search returns the minimum cost of turning start into target. Both words
// are assumed lowercase, at least three letters long and in the dictionary.
// A searcher built with invalid costs always returns the zero Result.
func (s *Searcher) Search(start, target string) Result {
	if s.err != nil {
		if s.opts.Logger != nil {
			s.opts.Logger.Warn("invalid costs", "err", s.err)
		}
		return Result{}
	}
	if start == target {
		return Result{Found: true}
	}
	r := &runner{
		lex:        s.lex,
		costs:      s.costs,
		target:     target,
		h:          s.opts.Heuristic,
		earlyBreak: s.opts.EarlyBreak,
		logger:     s.opts.Logger,
		best:       make(map[string]int),
	}
	r.run(start)
	return Result{Found: r.solutionFound, Cost: r.bestCost, Stats: r.stats}
}

// Solve is a one-shot Search.
func Solve(lex Lexicon, costs CostModel, start, target string, options ...Option) Result {
	return NewSearcher(lex, costs, options...).Search(start, target)
}

// runner holds the mutable state of a single search.
type runner struct {
	lex        Lexicon
	costs      CostModel
	target     string
	h          Heuristic
	earlyBreak bool
	logger     *log.Logger

	frontier frontier
	best     map[string]int // cheapest cost each word was queued with

	solutionFound bool
	bestCost      int
	stats         Stats
}

func (r *runner) run(start string) {
	r.best[start] = 0
	r.frontier.push(start, 0, r.h(start, r.target, r.costs))
	r.stats.Pushed++

	for r.frontier.Len() > 0 {
		e := r.frontier.pop()
		oldCost := r.best[e.word]
		if e.cost > oldCost {
			r.stats.Stale++
			continue
		}
		if r.earlyBreak && r.solutionFound && oldCost > r.bestCost {
			r.stats.EarlyBreak = true
			break
		}
		r.expand(e.word, oldCost)
	}
}

// expand applies every operation that could still beat the incumbent.
func (r *runner) expand(word string, cost int) {
	r.stats.Expanded++
	if r.logger != nil {
		r.logger.Debug("expand", "word", word, "cost", cost, "queued", r.frontier.Len())
	}
	if r.affordable(cost, OpInsert) {
		r.insertOp(word, cost+r.costs.Add)
	}
	if len(word) > minWordLen && r.affordable(cost, OpDelete) {
		r.deleteOp(word, cost+r.costs.Delete)
	}
	if r.affordable(cost, OpChange) {
		r.changeOp(word, cost+r.costs.Change)
	}
	if r.affordable(cost, OpAnagram) {
		r.anagramOp(word, cost+r.costs.Anagram)
	}
}

func (r *runner) affordable(cost int, op Op) bool {
	return !r.solutionFound || cost+r.costs.Cost(op) < r.bestCost
}

// accept records word as a solution or queues it. It returns true only
// when word is the target reached at a new best cost.
func (r *runner) accept(word string, cost int, bypass bool) bool {
	if word == r.target && (!r.solutionFound || cost < r.bestCost) {
		r.solutionFound = true
		r.bestCost = cost
		if r.logger != nil {
			r.logger.Debug("solution", "word", word, "cost", cost)
		}
		return true
	}
	if !bypass && !r.lex.Contains(word) {
		return false
	}
	if known, ok := r.best[word]; ok && known <= cost {
		return false
	}
	priority := cost + r.h(word, r.target, r.costs)
	if r.solutionFound && priority >= r.bestCost {
		return false
	}
	r.best[word] = cost
	r.frontier.push(word, cost, priority)
	r.stats.Pushed++
	return false
}
