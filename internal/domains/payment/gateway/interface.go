package gateway

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// =====================================================
// GATEWAY INTERFACES
// =====================================================

// OrderGateway creates orders on the payment provider.
type OrderGateway interface {
	// CreateOrder registers an order; amount and currency are validated remotely.
	CreateOrder(ctx context.Context, params OrderParams) (*Order, error)
}

// =====================================================
// COMMON REQUEST/RESPONSE TYPES
// =====================================================

// OrderParams request to create a gateway order
type OrderParams struct {
	Amount   decimal.Decimal   // Smallest currency unit (paise for INR)
	Currency string            // ISO 4217
	Receipt  string            // Merchant reference, max 40 chars
	Notes    map[string]string // Optional key/value notes
}

// Order is the gateway order object, returned to the caller verbatim.
type Order struct {
	ID         string          `json:"id"`
	Entity     string          `json:"entity"`
	Amount     int64           `json:"amount"`
	AmountPaid int64           `json:"amount_paid"`
	AmountDue  int64           `json:"amount_due"`
	Currency   string          `json:"currency"`
	Receipt    string          `json:"receipt"`
	OfferID    *string         `json:"offer_id"`
	Status     string          `json:"status"`
	Attempts   int             `json:"attempts"`
	Notes      json.RawMessage `json:"notes,omitempty"`
	CreatedAt  int64           `json:"created_at"`
}
