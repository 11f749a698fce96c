package model

import (
	"errors"
	"fmt"
)

// =====================================================
// PREDEFINED ERRORS
// =====================================================

var (
	ErrMissingCredentials    = errors.New("payment gateway credentials are not configured")
	ErrMissingSecret         = errors.New("payment gateway secret is not configured")
	ErrGatewayFailure        = errors.New("payment gateway request failed")
	ErrGatewayTimeout        = errors.New("payment gateway timed out")
	ErrInvalidRequest        = errors.New("invalid request body")
	ErrIdempotencyConflict   = errors.New("idempotency key reused with a different request")
	ErrIdempotencyInProgress = errors.New("request with this idempotency key is still in progress")
	ErrInvalidIdempotencyKey = errors.New("invalid idempotency key")
	ErrRegistryUnavailable   = errors.New("issued order registry is not configured")
)

// =====================================================
// CUSTOM PAYMENT ERROR
// =====================================================

type PaymentError struct {
	Code    string
	Message string
	Err     error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

func NewPaymentError(code, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// =====================================================
// ERROR CONSTRUCTORS
// =====================================================

func NewConfigurationError(err error) *PaymentError {
	return NewPaymentError(ErrCodeConfiguration, "Payment gateway is not configured", err)
}

// NewGatewayError keeps the upstream message, it ends up in the "details" field.
func NewGatewayError(upstream error) *PaymentError {
	return NewPaymentError(ErrCodeGateway, upstream.Error(), fmt.Errorf("%w: %w", ErrGatewayFailure, upstream))
}

func NewGatewayTimeoutError(upstream error) *PaymentError {
	return NewPaymentError(ErrCodeGatewayTimeout, "Payment gateway did not answer in time", fmt.Errorf("%w: %w", ErrGatewayTimeout, upstream))
}

func NewInvalidRequestError(err error) *PaymentError {
	return NewPaymentError(ErrCodeInvalidRequest, err.Error(), fmt.Errorf("%w: %w", ErrInvalidRequest, err))
}

func NewIdempotencyConflictError(key string) *PaymentError {
	return NewPaymentError(
		ErrCodeIdempotencyConflict,
		fmt.Sprintf("Idempotency key %q was already used with a different request", key),
		ErrIdempotencyConflict,
	)
}

func NewIdempotencyInProgressError(key string) *PaymentError {
	return NewPaymentError(
		ErrCodeIdempotencyInProgress,
		fmt.Sprintf("Request with idempotency key %q is still being processed", key),
		ErrIdempotencyInProgress,
	)
}

func NewInternalError(err error) *PaymentError {
	return NewPaymentError(ErrCodeInternal, "Internal payment error", err)
}

// ErrorCode extracts the PaymentError code, PAY_INTERNAL for anything else.
func ErrorCode(err error) string {
	var pe *PaymentError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrCodeInternal
}
