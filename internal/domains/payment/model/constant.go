package model

// =====================================================
// GATEWAY
// =====================================================
const (
	DefaultCurrency = "INR"

	// Receipts longer than this are rejected by the gateway.
	MaxReceiptLength = 40
)

// =====================================================
// HEADERS
// =====================================================
const (
	HeaderIdempotencyKey = "Idempotency-Key"

	MaxIdempotencyKeyLength = 255

	// Upper bound on order and payment ids accepted for verification.
	MaxVerificationIDLength = 1024
)

// =====================================================
// VERIFICATION MESSAGES
// =====================================================
const (
	MessageVerified           = "Payment verified successfully"
	MessageVerificationFailed = "Payment verification failed"
)

// =====================================================
// VERIFICATION REASONS
// =====================================================
const (
	ReasonVerified          = "verified"
	ReasonSignatureMismatch = "signature_mismatch"
	ReasonUnknownOrder      = "unknown_order"
	ReasonInvalidRequest    = "invalid_request"
	ReasonConfiguration     = "configuration_error"
	ReasonInternal          = "internal_error"
)

// =====================================================
// INTERNAL ERROR CODES
// =====================================================
const (
	ErrCodeConfiguration         = "PAY_CONFIG"
	ErrCodeGateway               = "PAY_GATEWAY"
	ErrCodeGatewayTimeout        = "PAY_GATEWAY_TIMEOUT"
	ErrCodeInvalidRequest        = "PAY_INVALID_REQUEST"
	ErrCodeIdempotencyConflict   = "PAY_IDEMPOTENCY_CONFLICT"
	ErrCodeIdempotencyInProgress = "PAY_IDEMPOTENCY_IN_PROGRESS"
	ErrCodeInternal              = "PAY_INTERNAL"
)

// Top-level error strings of the order initiation failure payload.
const (
	ErrorOrderCreation   = "Failed to create order"
	ErrorInvalidRequest  = "Invalid request"
	ErrorConfiguration   = "Payment gateway not configured"
	ErrorGatewayTimeout  = "Payment gateway timeout"
	ErrorIdempotencyUsed = "Idempotency key conflict"
)
