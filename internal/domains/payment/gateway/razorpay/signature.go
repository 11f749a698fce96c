package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// =====================================================
// RAZORPAY SIGNATURE
// =====================================================

// SignaturePayload builds the signed message: "<order_id>|<payment_id>".
func SignaturePayload(orderID, paymentID string) string {
	return orderID + "|" + paymentID
}

// GenerateSignature returns HMAC-SHA256(secret, orderID|paymentID) as lowercase hex.
func GenerateSignature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(SignaturePayload(orderID, paymentID)))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares the received signature with the expected one in
// constant time. The comparison is byte exact, an upper-case digest does not match.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected := GenerateSignature(orderID, paymentID, secret)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
