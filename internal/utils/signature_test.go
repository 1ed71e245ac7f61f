package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func gatewaySign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyGatewaySignature(t *testing.T) {
	const (
		orderID   = "order_MkX3pq9"
		paymentID = "pay_Nt7Kd2w"
		secret    = "test_secret"
	)
	sig := gatewaySign(orderID, paymentID, secret)

	if !VerifyGatewaySignature(orderID, paymentID, sig, secret) {
		t.Error("valid signature rejected")
	}
	if VerifyGatewaySignature(orderID, paymentID, sig, "other_secret") {
		t.Error("signature accepted under the wrong secret")
	}
	if VerifyGatewaySignature(orderID, "pay_other", sig, secret) {
		t.Error("signature accepted for a different payment")
	}
	if VerifyGatewaySignature(orderID, paymentID, "", secret) {
		t.Error("empty signature accepted")
	}
	if VerifyGatewaySignature(orderID, paymentID, "zz"+sig[2:], secret) {
		t.Error("tampered signature accepted")
	}
}
