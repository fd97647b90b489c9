package adapter

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/port"
)

// MemoryStore is an in-process port.Store used by tests and local runs where
// a shared Redis is not available. It honors the same semantics as the Redis
// adapter: typed misses, atomic set mutations, all-or-nothing batches.
// TTLs are checked lazily on read.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]memoryValue
	sets   map[string]map[string]struct{}
	now    func() time.Time
}

type memoryValue struct {
	data      string
	expiresAt time.Time // zero means no expiration
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]memoryValue),
		sets:   make(map[string]map[string]struct{}),
		now:    time.Now,
	}
}

var _ port.Store = (*MemoryStore)(nil)

func (m *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", port.ErrMiss
	}
	if !v.expiresAt.IsZero() && m.now().After(v.expiresAt) {
		delete(m.values, key)
		return "", port.ErrMiss
	}
	return v.data, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(key, value, ttl)
	return nil
}

func (m *MemoryStore) Del(ctx context.Context, keys ...string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delLocked(keys...), nil
}

func (m *MemoryStore) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := int64(0)
	if v, ok := m.values[key]; ok {
		if v.expiresAt.IsZero() || m.now().Before(v.expiresAt) {
			n, err := strconv.ParseInt(v.data, 10, 64)
			if err != nil {
				return 0, err
			}
			cur = n
		}
	}
	cur++
	m.values[key] = memoryValue{data: strconv.FormatInt(cur, 10)}
	return cur, nil
}

func (m *MemoryStore) SAdd(ctx context.Context, key string, members ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sAddLocked(key, members...)
	return nil
}

func (m *MemoryStore) SRem(ctx context.Context, key string, members ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sRemLocked(key, members...)
	return nil
}

func (m *MemoryStore) SMembers(ctx context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := m.sets[key]
	out := make([]string, 0, len(set))
	for member := range set {
		out = append(out, member)
	}
	return out, nil
}

func (m *MemoryStore) SCard(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.sets[key])), nil
}

// Batch applies all queued mutations under a single lock acquisition, which
// makes the batch atomic with respect to every other store operation.
func (m *MemoryStore) Batch(ctx context.Context, fn func(b port.Batch)) error {
	b := &memoryBatch{}
	fn(b)

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range b.ops {
		op(m)
	}
	return nil
}

func (m *MemoryStore) Ping(ctx context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) setLocked(key string, value string, ttl time.Duration) {
	v := memoryValue{data: value}
	if ttl > 0 {
		v.expiresAt = m.now().Add(ttl)
	}
	m.values[key] = v
}

func (m *MemoryStore) delLocked(keys ...string) int64 {
	var removed int64
	for _, key := range keys {
		_, hadValue := m.values[key]
		_, hadSet := m.sets[key]
		delete(m.values, key)
		delete(m.sets, key)
		// A key counts once no matter how many containers held it, same as
		// Redis DEL.
		if hadValue || hadSet {
			removed++
		}
	}
	return removed
}

func (m *MemoryStore) sAddLocked(key string, members ...string) {
	set := m.sets[key]
	if set == nil {
		set = make(map[string]struct{})
		m.sets[key] = set
	}
	for _, member := range members {
		set[member] = struct{}{}
	}
}

func (m *MemoryStore) sRemLocked(key string, members ...string) {
	set := m.sets[key]
	if set == nil {
		return
	}
	for _, member := range members {
		delete(set, member)
	}
	if len(set) == 0 {
		delete(m.sets, key)
	}
}

type memoryBatch struct {
	ops []func(m *MemoryStore)
}

func (b *memoryBatch) Set(key string, value string, ttl time.Duration) {
	b.ops = append(b.ops, func(m *MemoryStore) { m.setLocked(key, value, ttl) })
}

func (b *memoryBatch) Del(keys ...string) {
	b.ops = append(b.ops, func(m *MemoryStore) { m.delLocked(keys...) })
}

func (b *memoryBatch) SAdd(key string, members ...string) {
	b.ops = append(b.ops, func(m *MemoryStore) { m.sAddLocked(key, members...) })
}

func (b *memoryBatch) SRem(key string, members ...string) {
	b.ops = append(b.ops, func(m *MemoryStore) { m.sRemLocked(key, members...) })
}
