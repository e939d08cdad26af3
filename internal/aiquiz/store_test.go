package aiquiz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/saulo-duarte/codecourse-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("PutGetDelete", func(t *testing.T) {
		clock := newFakeClock()
		store := newMemoryStore(clock.Now)

		require.NoError(t, store.Put(ctx, testSession("s1", clock.Now().Add(time.Minute))))

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "Go", got.Topic)

		require.NoError(t, store.Delete(ctx, "s1"))
		_, err = store.Get(ctx, "s1")
		assert.True(t, errors.Is(err, ErrSessionNotFound))
	})

	t.Run("GetReturnsCopy", func(t *testing.T) {
		clock := newFakeClock()
		store := newMemoryStore(clock.Now)
		require.NoError(t, store.Put(ctx, testSession("s1", clock.Now().Add(time.Minute))))

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		got.Status = SessionCompleted

		again, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, SessionActive, again.Status)
	})

	t.Run("ExpiredIsNotFoundBeforeSweep", func(t *testing.T) {
		clock := newFakeClock()
		store := newMemoryStore(clock.Now)
		require.NoError(t, store.Put(ctx, testSession("s1", clock.Now().Add(time.Minute))))

		clock.Advance(time.Minute)
		_, err := store.Get(ctx, "s1")
		assert.True(t, errors.Is(err, ErrSessionNotFound))
	})

	t.Run("SweepEvictsOnlyExpired", func(t *testing.T) {
		clock := newFakeClock()
		store := newMemoryStore(clock.Now)
		require.NoError(t, store.Put(ctx, testSession("short", clock.Now().Add(time.Minute))))
		require.NoError(t, store.Put(ctx, testSession("long", clock.Now().Add(time.Hour))))

		clock.Advance(2 * time.Minute)
		n, err := store.SweepExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		_, err = store.Get(ctx, "long")
		assert.NoError(t, err)
		assert.Len(t, store.sessions, 1)
	})

	t.Run("ReputExtendsDeadline", func(t *testing.T) {
		clock := newFakeClock()
		store := newMemoryStore(clock.Now)
		s := testSession("s1", clock.Now().Add(time.Minute))
		require.NoError(t, store.Put(ctx, s))

		clock.Advance(30 * time.Second)
		s.Complete(clock.Now(), 15*time.Minute)
		require.NoError(t, store.Put(ctx, s))

		clock.Advance(5 * time.Minute)
		n, err := store.SweepExpired(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, SessionCompleted, got.Status)
	})
}

func TestRunSweeperStopsOnCancel(t *testing.T) {
	clock := newFakeClock()
	store := newMemoryStore(clock.Now)
	require.NoError(t, store.Put(context.Background(), testSession("s1", clock.Now().Add(time.Minute))))
	clock.Advance(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunSweeper(ctx, store, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		store.mu.RLock()
		defer store.mu.RUnlock()
		return len(store.sessions) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func newTestRedisStore(t *testing.T) (*redisStore, *miniredis.Miniredis, *fakeClock) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	clock := newFakeClock()
	store := NewRedisStore(client).(*redisStore)
	store.now = clock.Now
	return store, mr, clock
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()

	t.Run("RoundTripWithTTL", func(t *testing.T) {
		store, mr, clock := newTestRedisStore(t)
		require.NoError(t, store.Put(ctx, testSession("s1", clock.Now().Add(30*time.Minute))))

		assert.Equal(t, 30*time.Minute, mr.TTL(redisKeyPrefix+"s1"))

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "A", got.Questions[0].CorrectAnswer)
	})

	t.Run("KeyExpires", func(t *testing.T) {
		store, mr, clock := newTestRedisStore(t)
		require.NoError(t, store.Put(ctx, testSession("s1", clock.Now().Add(time.Minute))))

		mr.FastForward(2 * time.Minute)
		_, err := store.Get(ctx, "s1")
		assert.True(t, errors.Is(err, ErrSessionNotFound))
	})

	t.Run("PastDeadlineDeletes", func(t *testing.T) {
		store, mr, clock := newTestRedisStore(t)
		require.NoError(t, store.Put(ctx, testSession("s1", clock.Now().Add(time.Minute))))
		require.NoError(t, store.Put(ctx, testSession("s1", clock.Now().Add(-time.Second))))
		assert.False(t, mr.Exists(redisKeyPrefix+"s1"))
	})

	t.Run("EncryptedPayload", func(t *testing.T) {
		config.InitCrypto("0123456789abcdef0123456789abcdef")
		t.Cleanup(func() { config.InitCrypto("") })

		store, mr, clock := newTestRedisStore(t)
		require.NoError(t, store.Put(ctx, testSession("s1", clock.Now().Add(time.Minute))))

		raw, err := mr.Get(redisKeyPrefix + "s1")
		require.NoError(t, err)
		assert.NotContains(t, raw, "correctAnswer")

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "A", got.Questions[0].CorrectAnswer)
	})

	t.Run("SweepIsNoop", func(t *testing.T) {
		store, _, _ := newTestRedisStore(t)
		n, err := store.SweepExpired(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
