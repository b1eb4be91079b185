// Package service orchestrates pre-offer sessions: form edits, pricing
// through the rate service, the quote cache and offer submission.
package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"moving_quote_backend/internal/preoffer/domain"
	"moving_quote_backend/internal/preoffer/repository"
	"moving_quote_backend/internal/rate"
	"moving_quote_backend/internal/scheduler"
	"moving_quote_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const lockStripes = 64

// Service provides business logic for pre-offer sessions.
type Service struct {
	repo     repository.Repository
	rates    rate.Client
	notifier scheduler.OfferNotifier // optional, nil means offers are only recorded
	log      *logger.Logger
	now      func() time.Time

	locks    [lockStripes]sync.Mutex
	inflight singleflight.Group
}

// New creates a pre-offer service.
func New(repo repository.Repository, rates rate.Client, log *logger.Logger) *Service {
	return &Service{
		repo:  repo,
		rates: rates,
		log:   log,
		now:   time.Now,
	}
}

// SetOfferNotifier injects the follow-up hand-off for submitted offers.
func (s *Service) SetOfferNotifier(n scheduler.OfferNotifier) {
	s.notifier = n
}

// lock serializes load-modify-save cycles on one session.
func (s *Service) lock(id uuid.UUID) func() {
	h := fnv.New32a()
	_, _ = h.Write(id[:])
	m := &s.locks[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock
}

// mutate applies fn to the stored session under the session lock and saves
// the result. Nothing is written when fn fails.
func (s *Service) mutate(ctx context.Context, id uuid.UUID, fn func(*domain.Session) error) (domain.Session, error) {
	unlock := s.lock(id)
	defer unlock()

	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	if err := fn(&session); err != nil {
		return domain.Session{}, err
	}
	session.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("save pre-offer: %w", err)
	}
	return session, nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	return s.repo.Get(ctx, id)
}

func withSession(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, logger.SessionIDKey, id.String())
}
