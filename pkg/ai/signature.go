package ai

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// signaturePrefix is accepted in front of the hex digest, as schedulers
// that sign webhooks commonly send it
const signaturePrefix = "sha256="

// SignHMAC returns the hex sha256 HMAC of payload
func SignHMAC(secret string, payload []byte) string {
	return hex.EncodeToString(sum(secret, payload))
}

// VerifyHMAC reports whether signature is the sha256 HMAC of payload under
// secret. The signature is hex, optionally prefixed with "sha256=".
func VerifyHMAC(secret string, payload []byte, signature string) bool {
	if secret == "" {
		return false
	}
	got, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(signature), signaturePrefix))
	if err != nil || len(got) != sha256.Size {
		return false
	}
	return hmac.Equal(got, sum(secret, payload))
}

func sum(secret string, payload []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return mac.Sum(nil)
}
