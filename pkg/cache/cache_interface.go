package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when the backing store was never connected.
var ErrUnavailable = errors.New("cache unavailable")

// Cache is the key/value contract used by the payment repositories.
// Values are JSON encoded by the implementation.
type Cache interface {
	// Get unmarshals the stored value into dest.
	// found=false on a miss, dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with a TTL (0 means no expiry).
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// SetNX stores value only if key does not exist and reports whether it did.
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)

	Delete(ctx context.Context, keys ...string) error

	Exists(ctx context.Context, key string) (bool, error)

	Ping(ctx context.Context) error
}
