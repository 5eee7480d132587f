// Package dedupe tracks idempotency keys so that once-per-season actions
// (a paid training boost, a season tick) are applied at most once.
package dedupe

import (
	"context"
	"strconv"
	"strings"
	"sync"
)

// Deduper records keys to ensure at-most-once application.
type Deduper interface {
	// SeenAndRecord atomically checks if key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord forgets a key so the action can be retried. Used when an action
	// was claimed but then failed before changing any state.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

// Key builds the idempotency key for an action on one athlete in one season.
func Key(action, athleteID string, season int) string {
	var b strings.Builder
	b.Grow(len(action) + len(athleteID) + 8)
	b.WriteString(action)
	b.WriteByte(':')
	b.WriteString(athleteID)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(season))
	return b.String()
}

// inMemoryDeduper keeps keys in a map plus an insertion-ordered ring so that,
// when bounded, the oldest key is evicted first. Careers only move forward in
// seasons, so the oldest keys are the ones that can no longer be replayed.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]int // key -> slot in order, -1 in unbounded mode
	order   []string       // ring of keys, bounded mode only
	next    int            // next ring slot to write
	maxSize int            // 0 or negative = unbounded
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: 50000,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]int)
	if d.maxSize > 0 {
		d.order = make([]string, d.maxSize)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}
	if d.maxSize <= 0 {
		d.seen[key] = -1
		return false
	}

	// evict whatever occupies the slot we are about to reuse
	if old := d.order[d.next]; old != "" {
		if slot, ok := d.seen[old]; ok && slot == d.next {
			delete(d.seen, old)
		}
	}
	d.order[d.next] = key
	d.seen[key] = d.next
	d.next = (d.next + 1) % d.maxSize
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	slot, ok := d.seen[key]
	if !ok {
		return
	}
	delete(d.seen, key)
	if slot >= 0 && d.order[slot] == key {
		d.order[slot] = ""
	}
}

// Size returns the current number of keys held.
func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
