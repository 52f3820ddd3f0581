package morph

// Heuristic estimates the cost still needed to turn word into target.
type Heuristic func(word, target string, costs CostModel) int

// Estimate is a lower bound on the remaining cost from word to target.
//
// Length differences are paid with deletes or adds. Letters of word that
// never occur in target must each be deleted or changed, and letters of
// target that never occur in word must each be added or changed. Only the
// deletes (or adds) forced by the length difference can absorb those
// letters, every other one costs at least ChangeEstimate. Anagrams keep the
// letter multiset and cannot lower the bound.
func Estimate(word, target string, costs CostModel) int {
	lenDiff, bias, extra, missing := lengthBias(word, target, costs)
	must := max(extra-max(lenDiff, 0), missing+min(lenDiff, 0))
	return bias + max(0, must)*costs.ChangeEstimate()
}

// EstimateClassic is the older estimate. It offsets both letter counts
// by the signed length difference, which overcounts when the lengths differ
// (abcd to xyz with unit costs estimates 5, the real cost is 4).
func EstimateClassic(word, target string, costs CostModel) int {
	lenDiff, bias, extra, missing := lengthBias(word, target, costs)
	must := max(extra-lenDiff, missing+lenDiff)
	return bias + max(0, must)*costs.ChangeEstimate()
}

// lengthBias returns the signed length difference, the cost of closing it,
// and the foreign letter counts of word against target and back.
func lengthBias(word, target string, costs CostModel) (lenDiff, bias, extra, missing int) {
	lenDiff = len(word) - len(target)
	if lenDiff > 0 {
		bias = lenDiff * costs.Delete
	} else {
		bias = -lenDiff * costs.Add
	}
	var inWord, inTarget [256]bool
	for i := 0; i < len(word); i++ {
		inWord[word[i]] = true
	}
	for i := 0; i < len(target); i++ {
		inTarget[target[i]] = true
	}
	for i := 0; i < len(word); i++ {
		if !inTarget[word[i]] {
			extra++
		}
	}
	for i := 0; i < len(target); i++ {
		if !inWord[target[i]] {
			missing++
		}
	}
	return lenDiff, bias, extra, missing
}
