package morph

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name          string
		word, target  string
		costs         CostModel
		want, classic int
	}{
		{"same word", "cat", "cat", unit(1), 0, 0},
		{"anagram", "cat", "act", unit(1), 0, 0},
		{"one change", "cat", "bat", unit(1), 1, 1},
		{"longer word", "abcd", "xyz", unit(1), 4, 5},
		{"shorter word", "xyz", "abcd", unit(1), 4, 5},
		{"insert only", "cat", "cats", CostModel{Add: 3, Delete: 1, Change: 1, Anagram: 1}, 3, 4},
		{"delete only", "cats", "cat", CostModel{Add: 1, Delete: 4, Change: 1, Anagram: 1}, 4, 5},
		{"change via add and delete", "cat", "cow", CostModel{Add: 1, Delete: 1, Change: 10, Anagram: 1}, 4, 4},
		{"free", "abc", "xyz", CostModel{}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Estimate(tt.word, tt.target, tt.costs))
			assert.Equal(t, tt.classic, EstimateClassic(tt.word, tt.target, tt.costs))
		})
	}
}

func TestEstimateNeverNegative(t *testing.T) {
	words := []string{"abc", "abcd", "aaa", "zzzzzz", "cab", "xyzzy", "abcabc"}
	costs := []CostModel{{}, unit(1), {Add: 7, Delete: 0, Change: 3, Anagram: 2}, {Add: 0, Delete: 5, Change: 9, Anagram: 0}}
	for _, c := range costs {
		for _, a := range words {
			for _, b := range words {
				assert.GreaterOrEqual(t, Estimate(a, b, c), 0)
				assert.GreaterOrEqual(t, EstimateClassic(a, b, c), 0)
				assert.LessOrEqual(t, Estimate(a, b, c), EstimateClassic(a, b, c))
			}
		}
	}
}

func TestCostModel(t *testing.T) {
	c, err := NewCostModel(1, 2, 10, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Cost(OpInsert))
	assert.Equal(t, 2, c.Cost(OpDelete))
	assert.Equal(t, 10, c.Cost(OpChange))
	assert.Equal(t, 4, c.Cost(OpAnagram))
	assert.Equal(t, 3, c.ChangeEstimate())
	assert.Equal(t, "add=1 delete=2 change=10 anagram=4", c.String())

	_, err = NewCostModel(1, 1, -1, 1)
	assert.ErrorIs(t, err, ErrNegativeCost)
	assert.ErrorContains(t, err, "change=-1")

	_, err = NewCostModel(1, 1, 1, MaxCost+1)
	assert.ErrorIs(t, err, ErrCostTooLarge)
	assert.ErrorContains(t, err, "anagram=")

	c, err = NewCostModel(MaxCost, MaxCost, MaxCost, MaxCost)
	require.NoError(t, err)
	assert.Equal(t, MaxCost, c.ChangeEstimate())
}

func TestOpString(t *testing.T) {
	names := []string{"insert", "delete", "change", "anagram"}
	for i, op := range Ops {
		assert.Equal(t, names[i], op.String())
	}
	assert.Equal(t, "op(9)", Op(9).String())
}

func TestFrontierOrder(t *testing.T) {
	var f frontier
	f.push("dog", 1, 3)
	f.push("cat", 2, 3)
	f.push("bat", 0, 5)
	f.push("ant", 1, 1)
	heap.Init(&f)

	var got []string
	for f.Len() > 0 {
		got = append(got, f.pop().word)
	}
	assert.Equal(t, []string{"ant", "cat", "dog", "bat"}, got)
}
