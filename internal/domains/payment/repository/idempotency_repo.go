package repository

import (
	"context"
	"fmt"
	"time"

	"sportify-backend/internal/domains/payment/gateway"
	"sportify-backend/pkg/cache"
)

const idempotencyKeyPrefix = "idem:order:"

// =====================================================
// IDEMPOTENCY REPOSITORY IMPLEMENTATION
// =====================================================
type idempotencyRepository struct {
	cache   cache.Cache
	ttl     time.Duration
	lockTTL time.Duration
	now     func() time.Time
}

// NewIdempotencyRepository stores completed answers for ttl and holds the
// processing lock for at most lockTTL.
func NewIdempotencyRepository(c cache.Cache, ttl, lockTTL time.Duration) IdempotencyRepository {
	return &idempotencyRepository{
		cache:   c,
		ttl:     ttl,
		lockTTL: lockTTL,
		now:     time.Now,
	}
}

func idempotencyKey(key string) string {
	return idempotencyKeyPrefix + key
}

func (r *idempotencyRepository) Acquire(ctx context.Context, key, fingerprint string) (bool, *IdempotencyRecord, error) {
	lock := IdempotencyRecord{
		Status:      IdempotencyStatusProcessing,
		Fingerprint: fingerprint,
		CreatedAt:   r.now().UTC(),
	}

	ok, err := r.cache.SetNX(ctx, idempotencyKey(key), lock, r.lockTTL)
	if err != nil {
		return false, nil, fmt.Errorf("failed to acquire idempotency key: %w", err)
	}
	if ok {
		return true, nil, nil
	}

	var existing IdempotencyRecord
	found, err := r.cache.Get(ctx, idempotencyKey(key), &existing)
	if err != nil {
		return false, nil, fmt.Errorf("failed to read idempotency key: %w", err)
	}
	if !found {
		return false, nil, nil
	}
	return false, &existing, nil
}

func (r *idempotencyRepository) Complete(ctx context.Context, key, fingerprint string, order *gateway.Order) error {
	record := IdempotencyRecord{
		Status:      IdempotencyStatusCompleted,
		Fingerprint: fingerprint,
		Order:       order,
		CreatedAt:   r.now().UTC(),
	}
	if err := r.cache.Set(ctx, idempotencyKey(key), record, r.ttl); err != nil {
		return fmt.Errorf("failed to store idempotent response: %w", err)
	}
	return nil
}

func (r *idempotencyRepository) Release(ctx context.Context, key string) error {
	if err := r.cache.Delete(ctx, idempotencyKey(key)); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}
