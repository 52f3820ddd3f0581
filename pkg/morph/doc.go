/*
Package morph computes the minimum cost of turning one dictionary word into
another with four priced operations: inserting a letter, deleting a letter,
changing a letter, and replacing the word with one of its anagrams.

No word along the way may be shorter than three letters, and every word
produced by an insert, delete or change must be a dictionary word.

# Search

The engine is a best-first search over words. The frontier is a min-heap
ordered by accumulated cost plus a heuristic estimate of the remaining
cost. Once a first solution is known it becomes the incumbent: operations
that cannot beat it are never generated, candidates whose estimate reaches
it are never queued, and the loop stops as soon as the cheapest popped word
already costs more than the incumbent.

	costs, _ := morph.NewCostModel(1, 1, 1, 5)
	searcher := morph.NewSearcher(dict, costs)
	res := searcher.Search("cat", "bat")
	fmt.Println(res.Value()) // 1, or -1 when unreachable

# Heuristics

Estimate is the default and never overestimates, which keeps the pruning
exact. EstimateClassic is the older formula; it charges length differences
twice in some cases and can overestimate, so answers found with it are not
guaranteed minimal. Pair it with WithEarlyBreak(false) to reduce (not
remove) the risk.

The frontier keeps duplicate entries for a word instead of decreasing keys
in place. Entries whose cost is above the word's best known cost are
dropped when popped.
*/
package morph
