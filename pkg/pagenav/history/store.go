// Package history persists router snapshots so a navigation root can be
// restored after a restart.
//
// Backends:
//   - memory: in-process storage for tests and single-run apps
//   - redis: shared storage keyed per navigation root
//
// # Usage
//
//	store := history.NewRedisStore(client, history.DefaultTTL)
//	if snap, err := store.Load(ctx, "player-1"); err == nil && snap != nil {
//	    r.Restore(ctx, *snap)
//	}
//	...
//	store.Save(ctx, "player-1", r.Snapshot())
package history

import (
	"context"
	"sync"
	"time"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav/constants"
	"github.com/BrandonKowalski/pagenav/pkg/pagenav/router"
)

// DefaultTTL is how long a saved snapshot is kept.
const DefaultTTL = constants.DefaultHistoryTTL

// Store is the interface for snapshot storage backends.
type Store interface {
	// Save stores snap under key, replacing any earlier snapshot.
	Save(ctx context.Context, key string, snap router.Snapshot) error

	// Load returns the snapshot for key.
	// Returns nil, nil if there is none.
	Load(ctx context.Context, key string) (*router.Snapshot, error)

	// Delete removes the snapshot for key.
	Delete(ctx context.Context, key string) error
}

// MemoryStore keeps snapshots in memory.
type MemoryStore struct {
	mu    sync.Mutex
	snaps map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

type memoryEntry struct {
	snap      router.Snapshot
	expiresAt time.Time
}

// NewMemoryStore creates a MemoryStore. A zero ttl keeps snapshots forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		snaps: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (m *MemoryStore) Save(_ context.Context, key string, snap router.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := memoryEntry{snap: snap}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	m.snaps[key] = e
	return nil
}

func (m *MemoryStore) Load(_ context.Context, key string) (*router.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.snaps[key]
	if !ok {
		return nil, nil
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		delete(m.snaps, key)
		return nil, nil
	}
	snap := e.snap
	return &snap, nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snaps, key)
	return nil
}
