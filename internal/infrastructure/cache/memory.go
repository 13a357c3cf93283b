package cache

import "sync"

// Memo is an in-process memoization map scoped to a single run. The
// enrichment pass issues the same catalog query for every product that
// shares a name variant; the memo keeps the first response around for
// the rest of the run. Nothing survives the process.
type Memo struct {
	mu      sync.RWMutex
	entries map[string]any
}

// NewMemo creates an empty memo.
func NewMemo() *Memo {
	return &Memo{entries: make(map[string]any)}
}

// Get returns the memoized value for key and whether it was present.
func (m *Memo) Get(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

// Set stores value under key, replacing any previous entry.
func (m *Memo) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
}

// Len returns the number of memoized entries.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
