package projections

import (
	"context"
	"sync"

	"github.com/clinicbook/admin-console/internal/domain/providers"
)

// Manager owns the open subscriptions of one consuming view. Each watched
// collection gets its own goroutine that applies snapshots one at a time to
// completion, so a given projection is never mutated concurrently. Close
// releases every subscription; forgetting to close leaks delivery callbacks
// against torn-down state.
type Manager struct {
	store providers.DocumentStore

	mu     sync.Mutex
	subs   []*providers.Subscription
	wg     sync.WaitGroup
	closed bool
}

// NewManager creates a subscription manager over the given store.
func NewManager(store providers.DocumentStore) *Manager {
	return &Manager{store: store}
}

// Watch subscribes to a collection and applies each delivered snapshot
// serially. apply must treat every snapshot as authoritative full state.
func (m *Manager) Watch(ctx context.Context, collection string, filter providers.Predicate, apply func(providers.Snapshot)) error {
	sub, err := m.store.Subscribe(ctx, collection, filter)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		sub.Unsubscribe()
		return nil
	}
	m.subs = append(m.subs, sub)
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for snap := range sub.Snapshots() {
			apply(snap)
		}
	}()
	return nil
}

// Close unsubscribes everything and waits for the delivery goroutines to
// drain. Safe to call more than once.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	subs := m.subs
	m.subs = nil
	m.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
	m.wg.Wait()
}
