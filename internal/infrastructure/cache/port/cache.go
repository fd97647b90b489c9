package port

import (
	"context"
	"time"
)

// Store defines the contract for the shared ephemeral key-value store.
// Implementations must be concurrency-safe; the service is stateless and
// horizontally scaled, so all coordination state lives behind this port.
// All methods are context-aware to allow caller-driven timeouts/cancellation.
//
// Note: values are stored as strings to keep the port generic and avoid
// coupling to serialization concerns. Set mutations (SAdd/SRem) must be
// atomic natively; correctness of the voice/ring coordinators depends on it.
type Store interface {
	// Get fetches the value for key. Misses are returned as ("", ErrMiss)
	// so callers can tell a miss from a transport or server error.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key with the provided TTL. Zero or negative TTL
	// means no expiration (persist until evicted).
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes one or more keys and returns the number of keys removed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// Incr atomically increments the integer value at key by one, creating
	// it at 1 if absent, and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)

	// SAdd adds members to the set at key, creating the set if absent.
	SAdd(ctx context.Context, key string, members ...string) error

	// SRem removes members from the set at key. Removing from a missing set
	// is a no-op.
	SRem(ctx context.Context, key string, members ...string) error

	// SMembers returns all members of the set at key. A missing set yields
	// an empty slice, not an error.
	SMembers(ctx context.Context, key string) ([]string, error)

	// SCard returns the number of members in the set at key.
	SCard(ctx context.Context, key string) (int64, error)

	// Batch executes all operations queued on the Batch atomically: either
	// every mutation applies or none does.
	Batch(ctx context.Context, fn func(b Batch)) error

	// Ping verifies connectivity with the store backend.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// Batch accumulates mutations for atomic execution via Store.Batch.
type Batch interface {
	Set(key string, value string, ttl time.Duration)
	Del(keys ...string)
	SAdd(key string, members ...string)
	SRem(key string, members ...string)
}

// ErrMiss signals a cache miss in a typed way, allowing callers to
// differentiate misses from transport errors.
var ErrMiss = errMiss{}

type errMiss struct{}

func (e errMiss) Error() string { return "cache: miss" }
