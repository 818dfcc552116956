package cache

import (
	"sync"

	"github.com/Vitesh21/konix/internal/domain"
)

// DefaultCapacity matches the durable query window: the cache never needs
// to hold more history than a deviation query can consume.
const DefaultCapacity = 100

// Memory is the in-process fallback history: a fixed-capacity ring buffer
// of observations per asset. It is the resilience layer when the durable
// store is unavailable; its contents live and die with the process.
//
// Safe for concurrent use: one writer (the collector tick) and any number
// of readers (query requests). Readers receive copies and never observe a
// partially-appended entry.
type Memory struct {
	mu       sync.RWMutex
	capacity int
	rings    map[domain.Asset]*ring
}

type ring struct {
	buf   []domain.Observation
	head  int // index of the oldest element
	count int
}

// NewMemory creates an empty cache holding at most capacity observations
// per asset. Non-positive capacity falls back to DefaultCapacity.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memory{
		capacity: capacity,
		rings:    make(map[domain.Asset]*ring),
	}
}

// Append adds an observation to the asset's history. Once the asset's ring
// is full the oldest entry is overwritten. O(1).
func (m *Memory) Append(obs domain.Observation) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rings[obs.Coin]
	if !ok {
		r = &ring{buf: make([]domain.Observation, m.capacity)}
		m.rings[obs.Coin] = r
	}

	if r.count < m.capacity {
		r.buf[(r.head+r.count)%m.capacity] = obs
		r.count++
		return
	}

	// Full: overwrite the oldest slot and advance the head.
	r.buf[r.head] = obs
	r.head = (r.head + 1) % m.capacity
}

// Latest returns the most recently appended observation for the asset.
func (m *Memory) Latest(coin domain.Asset) (domain.Observation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rings[coin]
	if !ok || r.count == 0 {
		return domain.Observation{}, false
	}
	return r.buf[(r.head+r.count-1)%m.capacity], true
}

// Recent returns up to n most recent observations for the asset,
// oldest-first. Returns fewer when the history is shorter than n.
func (m *Memory) Recent(coin domain.Asset, n int) []domain.Observation {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rings[coin]
	if !ok || r.count == 0 || n <= 0 {
		return nil
	}

	if n > r.count {
		n = r.count
	}
	// Start n elements back from the newest.
	start := r.head + r.count - n

	out := make([]domain.Observation, n)
	for i := 0; i < n; i++ {
		out[i] = r.buf[(start+i)%m.capacity]
	}
	return out
}

// Len reports the number of observations currently held for the asset.
func (m *Memory) Len(coin domain.Asset) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rings[coin]
	if !ok {
		return 0
	}
	return r.count
}
