package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifyGatewaySignature checks the payment gateway's redirect signature:
// hex(HMAC-SHA256("<orderID>|<paymentID>", secret)). The comparison is
// constant-time; the backend is the only place this check ever runs.
func VerifyGatewaySignature(orderID, paymentID, signature, secret string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
