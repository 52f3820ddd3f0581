package morph

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNegativeCost is returned when an operation is given a cost below zero.
	ErrNegativeCost = errors.New("morph: operation cost must be non-negative")
	// ErrCostTooLarge is returned for costs above MaxCost.
	ErrCostTooLarge = errors.New("morph: operation cost too large")
)

// MaxCost is the largest accepted cost of a single operation. Sums of up
// to 2^31 such costs still fit in an int64, so accumulated costs and
// estimates cannot wrap.
const MaxCost = math.MaxInt32

// Op identifies one of the four transformation operations.
type Op int

const (
	OpInsert Op = iota
	OpDelete
	OpChange
	OpAnagram
)

// Ops lists the operations in the order the engine applies them.
var Ops = [...]Op{OpInsert, OpDelete, OpChange, OpAnagram}

func (op Op) String() string {
	switch op {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpChange:
		return "change"
	case OpAnagram:
		return "anagram"
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}

// CostModel holds the price of each operation. It is read-only for the
// lifetime of a search.
type CostModel struct {
	Add     int `toml:"add" msgpack:"a"`
	Delete  int `toml:"delete" msgpack:"d"`
	Change  int `toml:"change" msgpack:"c"`
	Anagram int `toml:"anagram" msgpack:"g"`
}

// NewCostModel builds a CostModel, rejecting costs outside [0, MaxCost].
func NewCostModel(add, del, change, anagram int) (CostModel, error) {
	c := CostModel{Add: add, Delete: del, Change: change, Anagram: anagram}
	if err := c.Validate(); err != nil {
		return CostModel{}, err
	}
	return c, nil
}

// Validate reports ErrNegativeCost or ErrCostTooLarge naming the first
// offending operation.
func (c CostModel) Validate() error {
	for _, op := range Ops {
		v := c.Cost(op)
		if v < 0 {
			return fmt.Errorf("%w: %s=%d", ErrNegativeCost, op, v)
		}
		if v > MaxCost {
			return fmt.Errorf("%w: %s=%d, limit %d", ErrCostTooLarge, op, v, MaxCost)
		}
	}
	return nil
}

// Cost returns the price of a single application of op.
func (c CostModel) Cost(op Op) int {
	switch op {
	case OpInsert:
		return c.Add
	case OpDelete:
		return c.Delete
	case OpChange:
		return c.Change
	case OpAnagram:
		return c.Anagram
	}
	return 0
}

// ChangeEstimate is the cheapest way to replace one letter: a change, or an
// add paired with a delete.
func (c CostModel) ChangeEstimate() int {
	return min(c.Change, c.Add+c.Delete)
}

func (c CostModel) String() string {
	return fmt.Sprintf("add=%d delete=%d change=%d anagram=%d", c.Add, c.Delete, c.Change, c.Anagram)
}
