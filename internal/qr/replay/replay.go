// Package replay remembers QR token ids that were already redeemed.
package replay

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/yerk0w/EduLifeFor-merge/pkg/redis"
)

// Store one-shot token id registry
type Store interface {
	// MarkUsed records id for ttl and reports whether it was unseen
	MarkUsed(ctx context.Context, id string, ttl time.Duration) (bool, error)
}

// ────────────────────── Redis ──────────────────────

const keyPrefix = "qr:used:"

// RedisStore shared across instances; entries expire with the token
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a RedisStore
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) MarkUsed(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, keyPrefix+id, ttl)
}

// ────────────────────── memory ──────────────────────

type entry struct {
	id      string
	expires time.Time
}

// MemoryStore single-process fallback holding at most capacity ids.
// When full the oldest id is dropped.
type MemoryStore struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // oldest first
	index    map[string]*list.Element
	now      func() time.Time
}

// NewMemoryStore creates a MemoryStore; capacity < 1 means 1
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity < 1 {
		capacity = 1
	}
	return &MemoryStore{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element, capacity),
		now:      time.Now,
	}
}

func (s *MemoryStore) MarkUsed(_ context.Context, id string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.prune(now)

	if el, ok := s.index[id]; ok {
		if now.Before(el.Value.(*entry).expires) {
			return false, nil
		}
		s.remove(el)
	}

	for s.order.Len() >= s.capacity {
		s.remove(s.order.Front())
	}
	s.index[id] = s.order.PushBack(&entry{id: id, expires: now.Add(ttl)})
	return true, nil
}

// Len ids currently remembered
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// prune drops expired ids from the front. TTLs are uniform in practice, so
// insertion order matches expiry order and the scan stops at the first live id.
func (s *MemoryStore) prune(now time.Time) {
	for el := s.order.Front(); el != nil; el = s.order.Front() {
		if now.Before(el.Value.(*entry).expires) {
			return
		}
		s.remove(el)
	}
}

func (s *MemoryStore) remove(el *list.Element) {
	delete(s.index, el.Value.(*entry).id)
	s.order.Remove(el)
}
