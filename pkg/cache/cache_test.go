package cache

import (
	"testing"

	"github.com/bastiangx/wordcost/pkg/morph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	costs := morph.CostModel{Add: 1, Delete: 2, Change: 3, Anagram: 4}
	base := Key("d1", costs, "admissible", "cat", "dog")
	assert.Equal(t, "solve:d1:1,2,3,4:admissible:cat>dog", string(base))
	assert.NotEqual(t, base, Key("d1", costs, "classic", "cat", "dog"))
	assert.NotEqual(t, base, Key("d1", costs, "admissible", "dog", "cat"))
	assert.NotEqual(t, base, Key("d2", costs, "admissible", "cat", "dog"))
}

func TestInMemory(t *testing.T) {
	c, err := Open("")
	require.NoError(t, err)
	defer c.Close()

	key := Key("d1", morph.CostModel{Add: 1, Delete: 1, Change: 1, Anagram: 1}, "admissible", "cat", "bat")

	_, ok, err := c.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)

	want := Entry{Found: true, Cost: 1, Expanded: 1}
	require.NoError(t, c.Put(key, want))

	got, ok, err := c.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	n, err := c.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPersistent(t *testing.T) {
	dir := t.TempDir()
	key := Key("d1", morph.CostModel{}, "classic", "abc", "xyz")

	c, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, c.Put(key, FromResult(morph.Result{})))
	require.NoError(t, c.Close())

	c, err = Open(dir)
	require.NoError(t, err)
	defer c.Close()

	got, ok, err := c.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, got.Found)
	assert.Equal(t, -1, got.Value())
}
