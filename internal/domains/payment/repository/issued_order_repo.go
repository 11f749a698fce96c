package repository

import (
	"context"
	"fmt"
	"time"

	"sportify-backend/internal/domains/payment/gateway"
	"sportify-backend/pkg/cache"
)

const issuedOrderKeyPrefix = "issued:order:"

type issuedOrder struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	CreatedAt int64  `json:"created_at"`
}

type issuedOrderRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewIssuedOrderRepository(c cache.Cache, ttl time.Duration) IssuedOrderRepository {
	return &issuedOrderRepository{cache: c, ttl: ttl}
}

func (r *issuedOrderRepository) Record(ctx context.Context, order *gateway.Order) error {
	entry := issuedOrder{
		Amount:    order.Amount,
		Currency:  order.Currency,
		Receipt:   order.Receipt,
		CreatedAt: order.CreatedAt,
	}
	if err := r.cache.Set(ctx, issuedOrderKeyPrefix+order.ID, entry, r.ttl); err != nil {
		return fmt.Errorf("failed to record issued order %s: %w", order.ID, err)
	}
	return nil
}

func (r *issuedOrderRepository) Exists(ctx context.Context, orderID string) (bool, error) {
	ok, err := r.cache.Exists(ctx, issuedOrderKeyPrefix+orderID)
	if err != nil {
		return false, fmt.Errorf("failed to look up issued order %s: %w", orderID, err)
	}
	return ok, nil
}
