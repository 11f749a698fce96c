package service

import (
	"context"

	"sportify-backend/internal/domains/payment/gateway"
	"sportify-backend/internal/domains/payment/model"
)

// =====================================================
// PAYMENT SERVICE INTERFACES
// =====================================================

type OrderService interface {
	// CreateOrder registers an order with the gateway and returns it verbatim.
	// A non-empty idempotencyKey makes retries with the same body return the same order.
	CreateOrder(ctx context.Context, req model.CreateOrderRequest, idempotencyKey string) (*gateway.Order, error)

	// Configured reports whether gateway credentials are present.
	Configured() bool
}

type VerificationService interface {
	// Verify checks the checkout signature. It never returns an error, failures
	// are carried by the result.
	Verify(ctx context.Context, req model.VerificationRequest) model.VerificationResult

	// Configured reports whether the signing secret is present.
	Configured() bool
}
