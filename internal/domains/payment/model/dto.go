package model

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// =====================================================
// ORDER INITIATION
// =====================================================

// CreateOrderRequest is the body of the order initiation endpoint.
// Amount is in the smallest currency unit; it is not validated locally.
type CreateOrderRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
}

// Normalize applies the default currency and canonical casing.
func (r *CreateOrderRequest) Normalize(defaultCurrency string) {
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	if r.Currency == "" {
		r.Currency = defaultCurrency
	}
}

// Fingerprint identifies the request body for idempotency replay checks.
func (r CreateOrderRequest) Fingerprint() string {
	sum := sha256.Sum256([]byte(r.Amount.String() + "|" + r.Currency))
	return hex.EncodeToString(sum[:])
}

// OrderErrorResponse is the failure payload of order initiation.
type OrderErrorResponse struct {
	Error     string `json:"error"`
	Details   string `json:"details"`
	Timestamp string `json:"timestamp"`
	Code      string `json:"code,omitempty"`
}

// =====================================================
// PAYMENT VERIFICATION
// =====================================================

var signaturePattern = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

// VerificationRequest carries the three artifacts returned by the checkout widget.
type VerificationRequest struct {
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
}

// Validate checks the signature shape only. Any order and payment id pair is
// accepted up to MaxVerificationIDLength, the HMAC decides the rest.
func (r VerificationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RazorpayOrderID,
			validation.RuneLength(0, MaxVerificationIDLength),
		),
		validation.Field(&r.RazorpayPaymentID,
			validation.RuneLength(0, MaxVerificationIDLength),
		),
		validation.Field(&r.RazorpaySignature,
			validation.Required.Error("razorpaySignature is required"),
			validation.Match(signaturePattern).Error("razorpaySignature must be a 64 character hex digest"),
		),
	)
}

// VerificationResponse is the body of every verification answer.
type VerificationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}
