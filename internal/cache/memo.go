// Package cache memoizes pure computations keyed by input content.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Key returns a content hash suitable as a memo key.
func Key(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
		// separator so ("ab","c") and ("a","bc") differ
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

type entry[V any] struct {
	val V
	err error
}

// Memo caches the results of fn per key. The caller owns its lifetime; there
// is no global instance and no expiry.
type Memo[V any] struct {
	mu    sync.RWMutex
	items map[string]entry[V]
	// entries allowed before the memo is reset; 0 means unbounded
	limit        int
	hits, misses int
}

// NewMemo returns a memo holding at most limit entries (0 = unbounded).
func NewMemo[V any](limit int) *Memo[V] {
	return &Memo[V]{items: make(map[string]entry[V]), limit: limit}
}

// Do returns the cached result for key, computing it with fn on a miss.
// Errors are cached too, since fn is expected to be pure.
func (m *Memo[V]) Do(key string, fn func() (V, error)) (V, error) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		m.mu.Lock()
		m.hits++
		m.mu.Unlock()
		return e.val, e.err
	}

	v, err := fn()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.misses++
	if m.limit > 0 && len(m.items) >= m.limit {
		m.items = make(map[string]entry[V])
	}
	m.items[key] = entry[V]{val: v, err: err}
	return v, err
}

// Len returns the number of cached entries.
func (m *Memo[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Stats returns hit and miss counts.
func (m *Memo[V]) Stats() (hits, misses int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hits, m.misses
}

// Clear drops every entry.
func (m *Memo[V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]entry[V])
}
