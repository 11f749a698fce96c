package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportify-backend/internal/domains/payment/gateway/mock"
	"sportify-backend/internal/domains/payment/model"
	repo "sportify-backend/internal/domains/payment/repository"
	infraCache "sportify-backend/internal/infrastructure/cache"
)

type orderFixture struct {
	gw          *mock.Gateway
	idempotency repo.IdempotencyRepository
	issued      repo.IssuedOrderRepository
	svc         OrderService
}

func newTestStore(t *testing.T) *infraCache.RedisCache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return infraCache.NewRedisCacheFromClient(client)
}

func newOrderFixture(t *testing.T, timeout time.Duration) *orderFixture {
	store := newTestStore(t)
	f := &orderFixture{
		gw:          mock.NewGateway(),
		idempotency: repo.NewIdempotencyRepository(store, time.Hour, time.Minute),
		issued:      repo.NewIssuedOrderRepository(store, time.Hour),
	}
	f.svc = NewOrderService(f.gw, f.idempotency, f.issued, OrderServiceConfig{
		DefaultCurrency: model.DefaultCurrency,
		Timeout:         timeout,
	})
	return f
}

func orderRequest(amount int64, currency string) model.CreateOrderRequest {
	return model.CreateOrderRequest{Amount: decimal.NewFromInt(amount), Currency: currency}
}

func TestOrderService_CreateOrder_DefaultsCurrency(t *testing.T) {
	f := newOrderFixture(t, time.Second)

	order, err := f.svc.CreateOrder(context.Background(), orderRequest(50000, ""), "")
	require.NoError(t, err)

	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, int64(50000), order.Amount)

	calls := f.gw.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "INR", calls[0].Currency)
	assert.True(t, decimal.NewFromInt(50000).Equal(calls[0].Amount))
	assert.Len(t, calls[0].Receipt, model.MaxReceiptLength)
	assert.Nil(t, calls[0].Notes)
}

func TestOrderService_CreateOrder_KeepsCurrency(t *testing.T) {
	f := newOrderFixture(t, time.Second)

	order, err := f.svc.CreateOrder(context.Background(), orderRequest(100, "usd"), "")
	require.NoError(t, err)
	assert.Equal(t, "USD", order.Currency)
}

func TestOrderService_CreateOrder_MissingCredentials(t *testing.T) {
	svc := NewOrderService(nil, nil, nil, OrderServiceConfig{})
	assert.False(t, svc.Configured())
	assert.True(t, newOrderFixture(t, time.Second).svc.Configured())

	_, err := svc.CreateOrder(context.Background(), orderRequest(100, "INR"), "")

	require.Error(t, err)
	assert.Equal(t, model.ErrCodeConfiguration, model.ErrorCode(err))
	assert.True(t, errors.Is(err, model.ErrMissingCredentials))
}

func TestOrderService_CreateOrder_GatewayError(t *testing.T) {
	f := newOrderFixture(t, time.Second)
	f.gw.Err = errors.New("Order amount less than minimum amount allowed")

	_, err := f.svc.CreateOrder(context.Background(), orderRequest(0, "INR"), "")

	require.Error(t, err)
	assert.Equal(t, model.ErrCodeGateway, model.ErrorCode(err))

	var pe *model.PaymentError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "Order amount less than minimum amount allowed", pe.Message)
}

func TestOrderService_CreateOrder_GatewayTimeout(t *testing.T) {
	f := newOrderFixture(t, 20*time.Millisecond)
	f.gw.Delay = time.Second

	start := time.Now()
	_, err := f.svc.CreateOrder(context.Background(), orderRequest(100, "INR"), "")

	require.Error(t, err)
	assert.Equal(t, model.ErrCodeGatewayTimeout, model.ErrorCode(err))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestOrderService_CreateOrder_RecordsIssuedOrder(t *testing.T) {
	f := newOrderFixture(t, time.Second)

	order, err := f.svc.CreateOrder(context.Background(), orderRequest(100, "INR"), "")
	require.NoError(t, err)

	ok, err := f.issued.Exists(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOrderService_CreateOrder_WithoutKeyCreatesNewOrders(t *testing.T) {
	f := newOrderFixture(t, time.Second)
	ctx := context.Background()

	first, err := f.svc.CreateOrder(ctx, orderRequest(100, "INR"), "")
	require.NoError(t, err)
	second, err := f.svc.CreateOrder(ctx, orderRequest(100, "INR"), "")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.Receipt, second.Receipt)
	assert.Len(t, f.gw.Calls(), 2)
}

func TestOrderService_CreateOrder_IdempotentReplay(t *testing.T) {
	f := newOrderFixture(t, time.Second)
	ctx := context.Background()

	first, err := f.svc.CreateOrder(ctx, orderRequest(100, "INR"), "key-1")
	require.NoError(t, err)
	second, err := f.svc.CreateOrder(ctx, orderRequest(100, ""), "key-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	calls := f.gw.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]string{"idempotency_key": "key-1"}, calls[0].Notes)
}

func TestOrderService_CreateOrder_IdempotencyConflict(t *testing.T) {
	f := newOrderFixture(t, time.Second)
	ctx := context.Background()

	_, err := f.svc.CreateOrder(ctx, orderRequest(100, "INR"), "key-1")
	require.NoError(t, err)

	_, err = f.svc.CreateOrder(ctx, orderRequest(200, "INR"), "key-1")
	require.Error(t, err)
	assert.Equal(t, model.ErrCodeIdempotencyConflict, model.ErrorCode(err))
	assert.Len(t, f.gw.Calls(), 1)
}

func TestOrderService_CreateOrder_IdempotencyInProgress(t *testing.T) {
	f := newOrderFixture(t, time.Second)
	ctx := context.Background()
	req := orderRequest(100, "INR")
	req.Normalize(model.DefaultCurrency)

	acquired, _, err := f.idempotency.Acquire(ctx, "key-busy", req.Fingerprint())
	require.NoError(t, err)
	require.True(t, acquired)

	_, err = f.svc.CreateOrder(ctx, req, "key-busy")
	require.Error(t, err)
	assert.Equal(t, model.ErrCodeIdempotencyInProgress, model.ErrorCode(err))
	assert.Empty(t, f.gw.Calls())
}

func TestOrderService_CreateOrder_ReleasesKeyOnFailure(t *testing.T) {
	f := newOrderFixture(t, time.Second)
	ctx := context.Background()

	f.gw.Err = errors.New("upstream down")
	_, err := f.svc.CreateOrder(ctx, orderRequest(100, "INR"), "key-retry")
	require.Error(t, err)

	f.gw.Err = nil
	order, err := f.svc.CreateOrder(ctx, orderRequest(100, "INR"), "key-retry")
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Len(t, f.gw.Calls(), 2)
}

func TestOrderService_CreateOrder_KeyTooLong(t *testing.T) {
	f := newOrderFixture(t, time.Second)

	_, err := f.svc.CreateOrder(context.Background(), orderRequest(100, "INR"), strings.Repeat("k", model.MaxIdempotencyKeyLength+1))

	require.Error(t, err)
	assert.Equal(t, model.ErrCodeInvalidRequest, model.ErrorCode(err))
	assert.Empty(t, f.gw.Calls())
}
