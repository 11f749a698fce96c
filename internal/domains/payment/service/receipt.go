package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const receiptPrefix = "receipt_"

// NewReceipt returns "receipt_" followed by the 32 hex digits of a random UUID,
// exactly 40 characters. Concurrent calls never collide.
func NewReceipt() string {
	return receiptPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// LegacyReceipt is the millisecond timestamp form. Two orders created in the
// same millisecond share a receipt, it is only kept for the paymentctl tool.
func LegacyReceipt(now time.Time) string {
	return fmt.Sprintf("%s%d", receiptPrefix, now.UnixMilli())
}
