package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type memoryEntry struct {
	sub       Submission
	expiresAt time.Time
}

// MemoryStore drží session v paměti procesu. Po restartu je prázdný.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	// mu chrání mapu entries (map v Go není thread-safe).
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore vytvoří úložiště, ve kterém každá session vyprší ttl po posledním uložení.
// ttl <= 0 znamená bez expirace.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Load(_ context.Context, id string) (Submission, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[id]
	if !ok || m.expired(e, m.now()) {
		return Submission{}, false, nil
	}
	return e.sub, true, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, sub Submission) error {
	e := memoryEntry{sub: sub}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.entries[id] = e
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}

// Len vrací počet uložených session (včetně těch, které janitor ještě neuklidil).
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Prune odstraní vypršené session a vrátí jejich počet.
func (m *MemoryStore) Prune() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.entries {
		if m.expired(e, now) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

// StartJanitor pravidelně volá Prune, dokud není ctx zrušen.
func (m *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Prune(); n > 0 {
				logger.Debug("Vypršené session odstraněny", "count", n)
			}
		}
	}
}

func (m *MemoryStore) expired(e memoryEntry, now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}
