package morph

import "container/heap"

// entry is a queued word. cost is the accumulated cost it was queued with;
// priority adds the heuristic estimate.
type entry struct {
	word     string
	cost     int
	priority int
}

// frontier is a min-heap of entries ordered by priority, then word.
// A word may appear several times; outdated copies are skipped on pop.
type frontier []*entry

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority < f[j].priority
	}
	return f[i].word < f[j].word
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(*entry)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}

func (f *frontier) push(word string, cost, priority int) {
	heap.Push(f, &entry{word: word, cost: cost, priority: priority})
}

func (f *frontier) pop() *entry {
	return heap.Pop(f).(*entry)
}
