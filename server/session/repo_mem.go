package session

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	rec       Record
	expiresAt time.Time
}

type memRepo struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time
}

// NewMemoryRepo creates an in-process record store
func NewMemoryRepo() Repo {
	return &memRepo{
		entries: make(map[string]memEntry),
		now:     time.Now,
	}
}

func (m *memRepo) Save(_ context.Context, rec Record, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[rec.PlayerID] = memEntry{rec: rec, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *memRepo) Take(_ context.Context, playerID string) (Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[playerID]
	if !ok {
		return Record{}, false, nil
	}
	delete(m.entries, playerID)
	if m.now().After(entry.expiresAt) {
		return Record{}, false, nil
	}
	return entry.rec, true, nil
}

func (m *memRepo) Delete(_ context.Context, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, playerID)
	return nil
}
