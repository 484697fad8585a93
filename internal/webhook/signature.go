package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Headers the provider signs its notifications with.
const (
	SignatureHeader = "x-webhook-signature"
	TimestampHeader = "x-webhook-timestamp"
)

// ValidSignature checks the provider's HMAC-SHA256 signature: base64 of
// HMAC(secret, timestamp+body) compared in constant time. Payloads that
// fail this check must not be trusted.
func ValidSignature(secret, timestamp string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
