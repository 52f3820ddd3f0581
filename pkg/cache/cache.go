// Package cache keeps solved transformations in badger so repeated requests
// skip the search. Values are msgpack encoded.
package cache

import (
	"errors"
	"fmt"

	"github.com/bastiangx/wordcost/internal/logger"
	"github.com/bastiangx/wordcost/pkg/morph"
	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v3"
	"github.com/vmihailenco/msgpack/v5"
)

const keyPrefix = "solve:"

// Entry is what gets stored for one solved problem.
type Entry struct {
	Found    bool `msgpack:"f"`
	Cost     int  `msgpack:"c"`
	Expanded int  `msgpack:"x"`
}

// FromResult converts a search result into an Entry.
func FromResult(r morph.Result) Entry {
	return Entry{Found: r.Found, Cost: r.Cost, Expanded: r.Stats.Expanded}
}

// Value returns the cost, or -1 when no transformation exists.
func (e Entry) Value() int {
	if !e.Found {
		return -1
	}
	return e.Cost
}

// Cache wraps a badger database.
type Cache struct {
	db *badger.DB
}

// Open opens or creates the cache in dir. An empty dir keeps everything in
// memory for the lifetime of the process.
func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logger.New("badger")})
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening cache %q: %w", dir, err)
	}
	return &Cache{db: db}, nil
}

// Key identifies a problem against a dictionary fingerprint, a cost model
// and a search mode. The mode should name whatever else changes the answer,
// like the heuristic.
func Key(dict string, costs morph.CostModel, mode, start, end string) []byte {
	return fmt.Appendf(nil, "%s%s:%d,%d,%d,%d:%s:%s>%s",
		keyPrefix, dict, costs.Add, costs.Delete, costs.Change, costs.Anagram, mode, start, end)
}

// Get looks key up. ok is false when nothing is stored.
func (c *Cache) Get(key []byte) (e Entry, ok bool, err error) {
	err = c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &e)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("cache get: %w", err)
	}
	return e, true, nil
}

// Put stores e under key, replacing any previous value.
func (c *Cache) Put(key []byte, e Entry) error {
	val, err := msgpack.Marshal(e)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
}

// Len counts stored entries.
func (c *Cache) Len() (int, error) {
	n := 0
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Close flushes and closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// badgerLogger routes badger's own logging through charm log.
type badgerLogger struct {
	*log.Logger
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.Warnf(format, args...)
}
