package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"documentor-ai-be/internal/apperror"
	"documentor-ai-be/internal/entity"
	"documentor-ai-be/internal/pkg/logger"
	"documentor-ai-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
)

func newTestRegistry(ttl time.Duration) (*Registry, *memory.CollectionRepository) {
	store := memory.NewCollectionRepository()
	return NewRegistry(store, 4, ttl, nil, logger.NopLogger{}), store
}

func TestRegisterAndLookup(t *testing.T) {
	reg, store := newTestRegistry(time.Hour)
	ctx := context.Background()

	sess, err := reg.Register(ctx)
	assert.NoError(t, err)
	assert.NotEmpty(t, sess.Id)
	assert.Equal(t, entity.SessionStatusActive, sess.Status)
	assert.True(t, sess.ExpiresAt.After(sess.CreatedAt))

	got, err := reg.Lookup(sess.Id)
	assert.NoError(t, err)
	assert.Equal(t, sess.Id, got.Id)

	count, err := store.CountFragments(ctx, sess.Id)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestLookupUnknownSession(t *testing.T) {
	reg, _ := newTestRegistry(time.Hour)

	_, err := reg.Lookup("00000000-0000-0000-0000-000000000000")
	assert.True(t, apperror.IsNotFound(err))
}

func TestExpiredSessionIsInvisibleBeforeSweep(t *testing.T) {
	reg, store := newTestRegistry(-time.Minute)
	ctx := context.Background()

	sess, err := reg.Register(ctx)
	assert.NoError(t, err)

	// Logically gone immediately.
	_, err = reg.Lookup(sess.Id)
	assert.True(t, apperror.IsNotFound(err))

	// Physically still present until a sweep runs.
	assert.Equal(t, 1, reg.Count())
	_, err = store.CountFragments(ctx, sess.Id)
	assert.NoError(t, err)
}

func TestCleanupExpired(t *testing.T) {
	reg, store := newTestRegistry(-time.Minute)
	ctx := context.Background()

	a, _ := reg.Register(ctx)
	b, _ := reg.Register(ctx)

	swept := reg.CleanupExpired(ctx)
	assert.Equal(t, 2, swept)
	assert.Equal(t, 0, reg.Count())

	for _, id := range []string{a.Id, b.Id} {
		_, err := store.CountFragments(ctx, id)
		assert.Error(t, err)
	}

	// Re-running with nothing newly expired is a no-op.
	assert.Equal(t, 0, reg.CleanupExpired(ctx))
}

func TestCleanupLeavesUnexpiredSessions(t *testing.T) {
	reg, _ := newTestRegistry(time.Hour)
	ctx := context.Background()

	sess, _ := reg.Register(ctx)

	assert.Equal(t, 0, reg.CleanupExpired(ctx))

	_, err := reg.Lookup(sess.Id)
	assert.NoError(t, err)
}

func TestRemoveIsIdempotent(t *testing.T) {
	reg, _ := newTestRegistry(time.Hour)
	ctx := context.Background()

	sess, _ := reg.Register(ctx)

	assert.NoError(t, reg.Remove(ctx, sess.Id))
	assert.NoError(t, reg.Remove(ctx, sess.Id))

	_, err := reg.Lookup(sess.Id)
	assert.True(t, apperror.IsNotFound(err))
}

// flakyStore fails deletes for one session id; everything else is delegated
// to the in-memory store.
type flakyStore struct {
	*memory.CollectionRepository
	failId string
}

func (f *flakyStore) Delete(ctx context.Context, sessionId string) error {
	if sessionId == f.failId {
		return errors.New("store unavailable")
	}
	return f.CollectionRepository.Delete(ctx, sessionId)
}

func TestSweepSkipsFailingSession(t *testing.T) {
	store := &flakyStore{CollectionRepository: memory.NewCollectionRepository()}
	reg := NewRegistry(store, 4, -time.Minute, nil, logger.NopLogger{})
	ctx := context.Background()

	bad, _ := reg.Register(ctx)
	good, _ := reg.Register(ctx)
	store.failId = bad.Id

	swept := reg.CleanupExpired(ctx)
	assert.Equal(t, 1, swept)

	// The failing session's record survives so the next sweep retries it.
	assert.Equal(t, 1, reg.Count())

	store.failId = ""
	assert.Equal(t, 1, reg.CleanupExpired(ctx))
	assert.Equal(t, 0, reg.Count())

	_, err := reg.Lookup(good.Id)
	assert.True(t, apperror.IsNotFound(err))
}

func TestLookupWhileRemovingSameSession(t *testing.T) {
	reg, _ := newTestRegistry(time.Hour)
	ctx := context.Background()

	// Run under -race: a live lookup must stay safe against a concurrent
	// remove of the same id, the interleaving a query hits when the sweep
	// fires mid-request.
	for i := 0; i < 50; i++ {
		sess, err := reg.Register(ctx)
		if err != nil {
			t.Fatalf("register session: %v", err)
		}

		done := make(chan struct{})
		go func() {
			for {
				select {
				case <-done:
					return
				default:
					reg.Lookup(sess.Id)
				}
			}
		}()

		assert.NoError(t, reg.Remove(ctx, sess.Id))
		close(done)

		_, err = reg.Lookup(sess.Id)
		assert.True(t, apperror.IsNotFound(err))
	}
	assert.Equal(t, 0, reg.Count())
}

func TestConcurrentRegisterAndRemove(t *testing.T) {
	reg, _ := newTestRegistry(time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]string, 20)

	for i := 0; i < len(ids); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess, err := reg.Register(ctx)
			if err != nil {
				t.Error(err)
				return
			}
			ids[i] = sess.Id
		}(i)
	}
	wg.Wait()

	assert.Equal(t, len(ids), reg.Count())

	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := reg.Remove(ctx, id); err != nil {
				t.Error(err)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 0, reg.Count())
}
