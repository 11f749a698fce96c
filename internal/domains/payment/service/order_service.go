package service

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"sportify-backend/internal/domains/payment/gateway"
	"sportify-backend/internal/domains/payment/model"
	repo "sportify-backend/internal/domains/payment/repository"
	"sportify-backend/pkg/logger"
)

// =====================================================
// ORDER SERVICE IMPLEMENTATION
// =====================================================

type OrderServiceConfig struct {
	DefaultCurrency string
	Timeout         time.Duration
}

type orderService struct {
	gateway     gateway.OrderGateway // nil when credentials are missing
	idempotency repo.IdempotencyRepository
	issued      repo.IssuedOrderRepository
	cfg         OrderServiceConfig
	newReceipt  func() string
}

// NewOrderService wires order initiation. A nil gateway makes every call fail
// with a configuration error; a nil issued repository disables order recording.
func NewOrderService(
	gw gateway.OrderGateway,
	idempotency repo.IdempotencyRepository,
	issued repo.IssuedOrderRepository,
	cfg OrderServiceConfig,
) OrderService {
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = model.DefaultCurrency
	}
	return &orderService{
		gateway:     gw,
		idempotency: idempotency,
		issued:      issued,
		cfg:         cfg,
		newReceipt:  NewReceipt,
	}
}

func (s *orderService) Configured() bool {
	return s.gateway != nil
}

// =====================================================
// CREATE ORDER
// =====================================================

// CreateOrder flow:
// 1. Reject when gateway credentials are missing (PAY_CONFIG)
// 2. Default currency, build receipt
// 3. Idempotency: replay, conflict or take the lock
// 4. Call the gateway within the configured timeout
// 5. Record issued order and idempotent answer
func (s *orderService) CreateOrder(
	ctx context.Context,
	req model.CreateOrderRequest,
	idempotencyKey string,
) (*gateway.Order, error) {
	if !s.Configured() {
		logger.Error("order creation rejected", model.ErrMissingCredentials)
		return nil, model.NewConfigurationError(model.ErrMissingCredentials)
	}

	req.Normalize(s.cfg.DefaultCurrency)

	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if len(idempotencyKey) > model.MaxIdempotencyKeyLength {
		return nil, model.NewInvalidRequestError(model.ErrInvalidIdempotencyKey)
	}

	if idempotencyKey != "" && s.idempotency != nil {
		replay, err := s.acquire(ctx, idempotencyKey, req.Fingerprint())
		if err != nil || replay != nil {
			return replay, err
		}
	}

	params := gateway.OrderParams{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  s.newReceipt(),
	}
	if idempotencyKey != "" {
		params.Notes = map[string]string{"idempotency_key": idempotencyKey}
	}

	order, err := s.callGateway(ctx, params)
	if err != nil {
		if idempotencyKey != "" && s.idempotency != nil {
			if relErr := s.idempotency.Release(context.WithoutCancel(ctx), idempotencyKey); relErr != nil {
				logger.Error("failed to release idempotency key", relErr)
			}
		}
		return nil, err
	}

	if s.issued != nil {
		if err := s.issued.Record(ctx, order); err != nil {
			logger.Error("failed to record issued order", err)
		}
	}

	if idempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.Complete(ctx, idempotencyKey, req.Fingerprint(), order); err != nil {
			logger.Error("failed to store idempotent response", err)
		}
	}

	logger.Info("order created", map[string]interface{}{
		"order_id": order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"receipt":  order.Receipt,
	})

	return order, nil
}

// acquire returns a replayed order, an idempotency error, or (nil, nil) when
// the caller now owns the key.
func (s *orderService) acquire(ctx context.Context, key, fingerprint string) (*gateway.Order, error) {
	acquired, existing, err := s.idempotency.Acquire(ctx, key, fingerprint)
	if err != nil {
		logger.Error("idempotency store unavailable", err)
		return nil, model.NewInternalError(err)
	}
	if acquired {
		return nil, nil
	}

	switch {
	case existing == nil:
		return nil, model.NewIdempotencyInProgressError(key)
	case existing.Fingerprint != fingerprint:
		logger.Warn("idempotency key reused with different body", map[string]interface{}{"idempotency_key": key})
		return nil, model.NewIdempotencyConflictError(key)
	case existing.Status == repo.IdempotencyStatusCompleted && existing.Order != nil:
		logger.Info("replaying idempotent order", map[string]interface{}{
			"idempotency_key": key,
			"order_id":        existing.Order.ID,
		})
		return existing.Order, nil
	default:
		return nil, model.NewIdempotencyInProgressError(key)
	}
}

func (s *orderService) callGateway(ctx context.Context, params gateway.OrderParams) (*gateway.Order, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	order, err := s.gateway.CreateOrder(ctx, params)
	if err == nil {
		return order, nil
	}

	if isTimeout(err) {
		logger.Error("payment gateway timed out", err)
		return nil, model.NewGatewayTimeoutError(err)
	}

	logger.Error("payment gateway rejected order", err)
	return nil, model.NewGatewayError(err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
