package projections

import (
	"sort"
	"sync"

	"github.com/clinicbook/admin-console/internal/domain/providers"
)

// Projection mirrors the latest known state of one subscribed collection as a
// mapping from id to decoded entity. Each snapshot replaces the whole mapping:
// entities absent from the new snapshot are dropped, present ones inserted or
// overwritten. Partial updates between snapshots are never accepted.
type Projection[T any] struct {
	mu     sync.RWMutex
	decode func(providers.Document) T
	items  map[string]T
	seq    uint64
	ready  bool
}

// New creates an empty projection with the given document decoder.
func New[T any](decode func(providers.Document) T) *Projection[T] {
	return &Projection[T]{
		decode: decode,
		items:  make(map[string]T),
	}
}

// Apply folds a full snapshot in. Stale snapshots (sequence at or below the
// last applied one) are ignored; reapplying the current snapshot is harmless
// since snapshots are idempotent full states.
func (p *Projection[T]) Apply(snap providers.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready && snap.Seq <= p.seq {
		return
	}

	next := make(map[string]T, len(snap.Docs))
	for _, doc := range snap.Docs {
		next[doc.ID] = p.decode(doc)
	}
	p.items = next
	p.seq = snap.Seq
	p.ready = true
}

// Get returns the entity with the given id, if present.
func (p *Projection[T]) Get(id string) (T, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	item, ok := p.items[id]
	return item, ok
}

// List returns all entities ordered by less. Sort order is computed on read
// so storage order never leaks to consumers.
func (p *Projection[T]) List(less func(a, b T) bool) []T {
	p.mu.RLock()
	out := make([]T, 0, len(p.items))
	for _, item := range p.items {
		out = append(out, item)
	}
	p.mu.RUnlock()

	if less != nil {
		sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

// Len returns the number of entities currently projected.
func (p *Projection[T]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.items)
}

// Ready reports whether at least one snapshot has been applied.
func (p *Projection[T]) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ready
}
