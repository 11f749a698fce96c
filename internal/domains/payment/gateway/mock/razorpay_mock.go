package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sportify-backend/internal/domains/payment/gateway"
)

// =====================================================
// MOCK ORDER GATEWAY FOR TESTING
// =====================================================

type Gateway struct {
	mu    sync.Mutex
	seq   int
	calls []gateway.OrderParams

	// Err, when set, is returned by every CreateOrder call.
	Err error
	// Delay blocks CreateOrder until it elapses or ctx is done.
	Delay time.Duration
}

func NewGateway() *Gateway {
	return &Gateway{}
}

var _ gateway.OrderGateway = (*Gateway)(nil)

func (g *Gateway) CreateOrder(ctx context.Context, params gateway.OrderParams) (*gateway.Order, error) {
	if g.Delay > 0 {
		select {
		case <-time.After(g.Delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("mock gateway: %w", ctx.Err())
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, params)
	if g.Err != nil {
		return nil, g.Err
	}

	g.seq++
	amount := params.Amount.IntPart()
	return &gateway.Order{
		ID:        fmt.Sprintf("order_%d", g.seq),
		Entity:    "order",
		Amount:    amount,
		AmountDue: amount,
		Currency:  params.Currency,
		Receipt:   params.Receipt,
		Status:    "created",
		CreatedAt: time.Now().Unix(),
	}, nil
}

// Calls returns a copy of the parameters of every CreateOrder call.
func (g *Gateway) Calls() []gateway.OrderParams {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]gateway.OrderParams, len(g.calls))
	copy(out, g.calls)
	return out
}
