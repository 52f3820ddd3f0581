package server

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/bastiangx/wordcost/pkg/cache"
	"github.com/bastiangx/wordcost/pkg/config"
	"github.com/bastiangx/wordcost/pkg/dictionary"
	"github.com/bastiangx/wordcost/pkg/morph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func newTestServer(t *testing.T, c *cache.Cache) *Server {
	t.Helper()
	dict := dictionary.New([]string{"cat", "cats", "bat", "rat", "act", "dog"})
	cfg := config.DefaultConfig()
	cfg.Costs = config.CostsConfig{Add: 1, Delete: 1, Change: 1, Anagram: 5}
	s, err := New(dict, cfg, c)
	require.NoError(t, err)
	return s
}

// roundTrip sends reqs and returns every decoded response after the ready
// signal.
func roundTrip(t *testing.T, s *Server, reqs ...any) []map[string]any {
	t.Helper()
	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range reqs {
		require.NoError(t, enc.Encode(r))
	}

	var out bytes.Buffer
	require.NoError(t, s.Serve(&in, &out))

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))
	require.Equal(t, "ready", ready.Status)

	var resps []map[string]any
	for {
		var m map[string]any
		err := dec.Decode(&m)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		resps = append(resps, m)
	}
	return resps
}

func asInt(t *testing.T, v any) int {
	t.Helper()
	switch n := v.(type) {
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return int(n)
	case uint64:
		return int(n)
	}
	t.Fatalf("not an integer: %#v", v)
	return 0
}

func TestSolve(t *testing.T) {
	s := newTestServer(t, nil)
	resps := roundTrip(t, s,
		Request{ID: "q1", Action: ActionSolve, Start: "cat", End: "bat"},
		Request{ID: "q2", Start: "CAT", End: "act"},
		Request{ID: "q3", Start: "cat", End: "act", Costs: &morph.CostModel{Add: 10, Delete: 10, Change: 10, Anagram: 1}},
		Request{ID: "q4", Start: "cat", End: "dog", Costs: &morph.CostModel{Add: 1, Delete: 1, Change: 100, Anagram: 100}},
	)
	require.Len(t, resps, 4)

	assert.Equal(t, "q1", resps[0]["id"])
	assert.Equal(t, true, resps[0]["f"])
	assert.Equal(t, 1, asInt(t, resps[0]["c"]))
	assert.Equal(t, false, resps[0]["h"])

	// no dictionary word sits between cat and act, so only the anagram works
	assert.Equal(t, 5, asInt(t, resps[1]["c"]))
	assert.Equal(t, 1, asInt(t, resps[2]["c"]))

	assert.Equal(t, false, resps[3]["f"])
	assert.Equal(t, -1, asInt(t, resps[3]["c"]))
}

func TestSolveErrors(t *testing.T) {
	s := newTestServer(t, nil)
	resps := roundTrip(t, s,
		Request{ID: "e1", Start: "", End: "bat"},
		Request{ID: "e2", Start: "at", End: "bat"},
		Request{ID: "e3", Start: "c4t", End: "bat"},
		Request{ID: "e4", Start: "cow", End: "bat"},
		Request{ID: "e5", Start: "cat", End: "bat", Costs: &morph.CostModel{Add: -1}},
		Request{ID: "e6", Start: "cat", End: "act", Costs: &morph.CostModel{Add: 1, Delete: 1, Change: 1, Anagram: math.MaxInt}},
		Request{ID: "e7", Action: "explode"},
		42,
	)
	require.Len(t, resps, 8)

	want := []int{
		CodeBadRequest, CodeBadRequest, CodeBadRequest, CodeNotFound,
		CodeBadRequest, CodeBadRequest, CodeBadRequest, CodeBadRequest,
	}
	for i, code := range want {
		assert.Equal(t, code, asInt(t, resps[i]["c"]), "response %d", i)
		assert.NotEmpty(t, resps[i]["e"], "response %d", i)
	}
	assert.Equal(t, "e4", resps[3]["id"])
}

func TestHealthAndInfo(t *testing.T) {
	s := newTestServer(t, nil)
	resps := roundTrip(t, s,
		Request{ID: "h1", Action: ActionHealth},
		Request{ID: "i1", Action: ActionInfo},
	)
	require.Len(t, resps, 2)

	assert.Equal(t, "ok", resps[0]["status"])
	assert.Equal(t, "h1", resps[0]["id"])

	assert.Equal(t, 6, asInt(t, resps[1]["words"]))
	assert.Equal(t, 5, asInt(t, resps[1]["classes"]))
	assert.Equal(t, morph.HeuristicAdmissible, resps[1]["heuristic"])
	costs, ok := resps[1]["costs"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 5, asInt(t, costs["g"]))
}

func TestCacheHit(t *testing.T) {
	c, err := cache.Open("")
	require.NoError(t, err)
	defer c.Close()

	s := newTestServer(t, c)
	resps := roundTrip(t, s,
		Request{ID: "a", Start: "cat", End: "rat"},
		Request{ID: "b", Start: "cat", End: "rat"},
	)
	require.Len(t, resps, 2)
	assert.Equal(t, false, resps[0]["h"])
	assert.Equal(t, true, resps[1]["h"])
	assert.Equal(t, asInt(t, resps[0]["c"]), asInt(t, resps[1]["c"]))
	assert.Equal(t, asInt(t, resps[0]["x"]), asInt(t, resps[1]["x"]))
}

func TestCacheKeepsDictionariesApart(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	req := Request{ID: "p", Start: "cat", End: "big"}

	c, err := cache.Open(dir)
	require.NoError(t, err)
	s, err := New(dictionary.New([]string{"cat", "bat", "bag", "big"}), cfg, c)
	require.NoError(t, err)
	resps := roundTrip(t, s, req, req)
	require.Len(t, resps, 2)
	assert.Equal(t, 3, asInt(t, resps[0]["c"]))
	assert.Equal(t, true, resps[1]["h"])
	require.NoError(t, c.Close())

	c, err = cache.Open(dir)
	require.NoError(t, err)
	defer c.Close()
	s, err = New(dictionary.New([]string{"cat", "big"}), cfg, c)
	require.NoError(t, err)
	resps = roundTrip(t, s, req)
	require.Len(t, resps, 1)
	assert.Equal(t, false, resps[0]["h"])
	assert.Equal(t, false, resps[0]["f"])
	assert.Equal(t, -1, asInt(t, resps[0]["c"]))

	// same words in another order hit the stored entry
	s, err = New(dictionary.New([]string{"big", "bag", "bat", "cat"}), cfg, c)
	require.NoError(t, err)
	resps = roundTrip(t, s, req)
	require.Len(t, resps, 1)
	assert.Equal(t, true, resps[0]["h"])
	assert.Equal(t, 3, asInt(t, resps[0]["c"]))
}

func TestInvalidStream(t *testing.T) {
	s := newTestServer(t, nil)
	var out bytes.Buffer
	// 0xc1 is never used in msgpack
	err := s.Serve(bytes.NewReader([]byte{0xc1}), &out)
	assert.Error(t, err)
}
