package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"documentor-ai-be/internal/apperror"
	"documentor-ai-be/internal/entity"
	"documentor-ai-be/internal/pkg/logger"
	"documentor-ai-be/internal/repository/contract"
	"documentor-ai-be/pkg/events"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Registry tracks session identity and expiry. Records live in a go-cache
// with expiration disabled: a session past its expires_at is invisible to
// Lookup immediately, but removal of the record and its collection belongs
// to Remove/CleanupExpired alone. Operations on one session id are
// serialized by a per-id mutex; cross-session operations never contend.
type Registry struct {
	collections contract.CollectionRepository
	records     *cache.Cache
	locks       sync.Map // session id -> *sync.Mutex
	dimension   int
	ttl         time.Duration
	publisher   events.Publisher
	log         logger.ILogger
}

func NewRegistry(
	collections contract.CollectionRepository,
	dimension int,
	ttl time.Duration,
	publisher events.Publisher,
	log logger.ILogger,
) *Registry {
	return &Registry{
		collections: collections,
		records:     cache.New(cache.NoExpiration, 0),
		dimension:   dimension,
		ttl:         ttl,
		publisher:   publisher,
		log:         log,
	}
}

func (r *Registry) lockFor(id string) *sync.Mutex {
	v, _ := r.locks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// Register creates a new Active session together with its empty collection.
// The collection is created first; the record only appears once the
// collection exists, so no record ever points at a missing collection.
func (r *Registry) Register(ctx context.Context) (*entity.Session, error) {
	id := uuid.NewString()

	mu := r.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	if err := r.collections.Create(ctx, id, r.dimension); err != nil {
		r.locks.Delete(id)
		return nil, fmt.Errorf("create collection: %w", err)
	}

	now := time.Now()
	s := &entity.Session{
		Id:        id,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
		Status:    entity.SessionStatusActive,
	}
	r.records.Set(id, s, cache.NoExpiration)

	r.publish(ctx, events.SessionRegistered, map[string]interface{}{
		"session_id": id,
		"expires_at": s.ExpiresAt,
	})
	return s, nil
}

// Lookup resolves an Active, unexpired session. A session whose expires_at
// has passed is NotFound even before the sweep physically removes it.
func (r *Registry) Lookup(id string) (*entity.Session, error) {
	if x, found := r.records.Get(id); found {
		s := x.(*entity.Session)
		if s.Status == entity.SessionStatusActive && !s.Expired(time.Now()) {
			return s, nil
		}
	}
	return nil, apperror.NewSessionNotFound(id)
}

// Remove deletes the collection and then the record. If the collection
// delete fails the record stays behind so the next sweep retries; the
// record is never removed while its collection might still exist.
func (r *Registry) Remove(ctx context.Context, id string) error {
	mu := r.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	if _, found := r.records.Get(id); !found {
		return nil
	}

	if err := r.collections.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete collection %s: %w", id, err)
	}

	// The session record is never mutated after Register: Lookup reads it
	// without the per-id lock, so retirement is deletion only.
	r.records.Delete(id)
	r.locks.Delete(id)

	r.publish(ctx, events.SessionRemoved, map[string]interface{}{
		"session_id": id,
	})
	return nil
}

// CleanupExpired removes every session whose expires_at has passed and
// returns how many were swept. A failing removal is logged and skipped so
// one broken session cannot block cleanup of the rest. Re-running with no
// newly-expired sessions is a no-op.
func (r *Registry) CleanupExpired(ctx context.Context) int {
	now := time.Now()
	swept := 0

	for id, item := range r.records.Items() {
		s, ok := item.Object.(*entity.Session)
		if !ok || !s.Expired(now) {
			continue
		}
		if err := r.Remove(ctx, id); err != nil {
			r.log.Warn("SESSION", "Failed to remove expired session, will retry next sweep", map[string]interface{}{
				"session_id": id,
				"error":      err.Error(),
			})
			continue
		}
		r.publish(ctx, events.SessionExpired, map[string]interface{}{
			"session_id": id,
			"expired_at": s.ExpiresAt,
		})
		swept++
	}
	return swept
}

// Count reports how many records exist physically, expired ones included.
func (r *Registry) Count() int {
	return r.records.ItemCount()
}

func (r *Registry) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if r.publisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := r.publisher.Publish(ctx, evt); err != nil {
		r.log.Error("SESSION", "Failed to publish session lifecycle event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
