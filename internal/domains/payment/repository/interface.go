package repository

import (
	"context"
	"time"

	"sportify-backend/internal/domains/payment/gateway"
)

// =====================================================
// IDEMPOTENCY REPOSITORY INTERFACE
// =====================================================

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

// IdempotencyRecord is stored under idem:order:<key>.
type IdempotencyRecord struct {
	Status      string         `json:"status"`
	Fingerprint string         `json:"fingerprint"`
	Order       *gateway.Order `json:"order,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type IdempotencyRepository interface {
	// Acquire takes the processing lock for key. When the key is already held,
	// acquired is false and existing carries the stored record (nil if it vanished).
	Acquire(ctx context.Context, key, fingerprint string) (acquired bool, existing *IdempotencyRecord, err error)

	// Complete stores the order as the replayable answer for key.
	Complete(ctx context.Context, key, fingerprint string, order *gateway.Order) error

	// Release drops the lock after a failed attempt so the key can be retried.
	Release(ctx context.Context, key string) error
}

// =====================================================
// ISSUED ORDER REPOSITORY INTERFACE
// =====================================================

type IssuedOrderRepository interface {
	// Record marks an order id as issued by this service.
	Record(ctx context.Context, order *gateway.Order) error

	// Exists reports whether the order id was issued by this service.
	Exists(ctx context.Context, orderID string) (bool, error)
}
