package repository

import (
	"context"
	"testing"
	"time"

	"moving_quote_backend/internal/preoffer/domain"
	"moving_quote_backend/platform/apperr"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() domain.Session {
	area := 72.0
	state := domain.New()
	state.FirstName = "Alice"
	state.AddressFrom = "Wolfgatan 1, 11021, Stockholm"
	state.LivingAreaInM2 = &area
	state.SetEstimatedPrice(domain.Price{Value: 1000, Currency: "SEK"}, state.Snapshot())

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return domain.Session{ID: uuid.New(), State: state, CreatedAt: now, UpdatedAt: now}
}

// exerciseRepository runs the contract every implementation must satisfy.
func exerciseRepository(t *testing.T, repo Repository) {
	ctx := context.Background()
	session := sampleSession()

	_, err := repo.Get(ctx, session.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	require.NoError(t, repo.Save(ctx, session))
	got, err := repo.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session, got)
	assert.True(t, got.State.IsUnchanged())

	session.State.ClearEstimatedPrice()
	require.NoError(t, repo.Save(ctx, session))
	got, err = repo.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, got.State.CachedPrice())

	require.NoError(t, repo.Delete(ctx, session.ID))
	_, err = repo.Get(ctx, session.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestMemoryRepository(t *testing.T) {
	exerciseRepository(t, NewMemoryRepository(time.Hour))
}

func TestMemoryRepositoryExpires(t *testing.T) {
	repo := NewMemoryRepository(time.Minute)
	now := time.Now()
	repo.now = func() time.Time { return now }

	session := sampleSession()
	require.NoError(t, repo.Save(context.Background(), session))

	now = now.Add(2 * time.Minute)
	_, err := repo.Get(context.Background(), session.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestMemoryRepositorySweepsPeriodically(t *testing.T) {
	repo := NewMemoryRepository(time.Minute)
	now := time.Now()
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	stale := sampleSession()
	require.NoError(t, repo.Save(ctx, stale))
	now = now.Add(2 * time.Minute)

	for i := 1; i < sweepEvery-1; i++ {
		require.NoError(t, repo.Save(ctx, sampleSession()))
	}
	repo.mu.RLock()
	_, kept := repo.entries[stale.ID]
	repo.mu.RUnlock()
	assert.True(t, kept, "expired entries stay until the next sweep")

	require.NoError(t, repo.Save(ctx, sampleSession()))

	repo.mu.RLock()
	defer repo.mu.RUnlock()
	assert.NotContains(t, repo.entries, stale.ID)
	assert.Len(t, repo.entries, sweepEvery-1)
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisRepository(t *testing.T) {
	_, client := newMiniredis(t)
	exerciseRepository(t, NewRedisRepository(client, time.Hour))
}

func TestRedisRepositoryTTL(t *testing.T) {
	mr, client := newMiniredis(t)
	repo := NewRedisRepository(client, 30*time.Minute)
	session := sampleSession()

	require.NoError(t, repo.Save(context.Background(), session))
	assert.Equal(t, 30*time.Minute, mr.TTL(sessionKey(session.ID)))

	mr.FastForward(31 * time.Minute)
	_, err := repo.Get(context.Background(), session.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestRedisRepositoryCorruptDocument(t *testing.T) {
	mr, client := newMiniredis(t)
	repo := NewRedisRepository(client, time.Hour)
	id := uuid.New()
	require.NoError(t, mr.Set(sessionKey(id), "{not json"))

	_, err := repo.Get(context.Background(), id)
	require.Error(t, err)
	assert.False(t, apperr.Is(err, apperr.KindNotFound))
}
