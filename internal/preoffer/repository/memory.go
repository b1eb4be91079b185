package repository

import (
	"context"
	"sync"
	"time"

	"moving_quote_backend/internal/preoffer/domain"

	"github.com/google/uuid"
)

// sweepEvery is how many saves pass between full expiry sweeps.
const sweepEvery = 256

type memoryEntry struct {
	session   domain.Session
	expiresAt time.Time
}

// MemoryRepository keeps sessions in process. Entries expire ttl after
// their last save. Get drops an expired entry it finds; the rest are swept
// every sweepEvery saves.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]memoryEntry
	ttl     time.Duration
	now     func() time.Time
	saves   int
}

// NewMemoryRepository creates an in-process repository.
func NewMemoryRepository(ttl time.Duration) *MemoryRepository {
	return &MemoryRepository{
		entries: make(map[uuid.UUID]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (r *MemoryRepository) Get(_ context.Context, id uuid.UUID) (domain.Session, error) {
	r.mu.RLock()
	entry, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok {
		return domain.Session{}, notFound()
	}
	if r.ttl > 0 && r.now().After(entry.expiresAt) {
		r.mu.Lock()
		delete(r.entries, id)
		r.mu.Unlock()
		return domain.Session{}, notFound()
	}
	return entry.session, nil
}

func (r *MemoryRepository) Save(_ context.Context, session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[session.ID] = memoryEntry{
		session:   session,
		expiresAt: r.now().Add(r.ttl),
	}
	r.saves++
	if r.saves%sweepEvery == 0 {
		r.sweepLocked()
	}
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	return nil
}

func (r *MemoryRepository) sweepLocked() {
	if r.ttl <= 0 {
		return
	}
	now := r.now()
	for id, entry := range r.entries {
		if now.After(entry.expiresAt) {
			delete(r.entries, id)
		}
	}
}
