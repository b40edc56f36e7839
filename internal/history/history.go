// Package history keeps a bounded, in-memory record of lookup results for an
// interactive session.
package history

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/maypok86/otter"
)

// DefaultCapacity is the number of results kept when none is configured.
const DefaultCapacity = 500

const keyLen = 6

// Record is one remembered result.
type Record[V any] struct {
	Key   string
	Kind  string // lookup direction, e.g. "latin" or "eng"
	Query string
	At    time.Time
	Value V
	seq   uint64
}

// History maps short content keys to results. When full, older records are
// evicted by the cache policy.
type History[V any] struct {
	cache otter.Cache[string, Record[V]]
	seq   atomic.Uint64
}

// New creates a history holding up to capacity records.
func New[V any](capacity int) (*History[V], error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	cache, err := otter.MustBuilder[string, Record[V]](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("building history cache: %w", err)
	}
	return &History[V]{cache: cache}, nil
}

// Key derives the short key of a query: the first six hex digits of
// sha256("<kind>_<query>").
func Key(kind, query string) string {
	sum := sha256.Sum256([]byte(kind + "_" + query))
	return hex.EncodeToString(sum[:])[:keyLen]
}

// Add remembers v and returns its key. Re-adding the same query replaces the
// record and moves it to the end of the listing.
func (h *History[V]) Add(kind, query string, v V) string {
	rec := Record[V]{
		Key:   Key(kind, query),
		Kind:  kind,
		Query: query,
		At:    time.Now(),
		Value: v,
		seq:   h.seq.Add(1),
	}
	h.cache.Set(rec.Key, rec)
	return rec.Key
}

// Get returns the record stored under key.
func (h *History[V]) Get(key string) (Record[V], bool) {
	return h.cache.Get(key)
}

// List returns the remembered records, oldest first.
func (h *History[V]) List() []Record[V] {
	out := make([]Record[V], 0, h.cache.Size())
	h.cache.Range(func(_ string, rec Record[V]) bool {
		out = append(out, rec)
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// Len returns the number of remembered records.
func (h *History[V]) Len() int {
	return h.cache.Size()
}

// Close releases the cache.
func (h *History[V]) Close() {
	h.cache.Close()
}
