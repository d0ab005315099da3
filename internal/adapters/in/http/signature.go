package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// paymentSignature is the gateway's notification signature:
// hex(sha512(order_id + status_code + gross_amount + server_key)).
func paymentSignature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func verifyPaymentSignature(orderID, statusCode, grossAmount, signature, serverKey string) bool {
	expected := paymentSignature(orderID, statusCode, grossAmount, serverKey)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature))))
}

// verifyCarrierSignature checks a hex HMAC-SHA256 of the raw request body.
func verifyCarrierSignature(body []byte, signature, secret string) bool {
	got, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), got)
}
