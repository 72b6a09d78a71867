package linemsg

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// GenerateSignature creates the base64 HMAC-SHA256 digest LINE uses for
// webhook validation: HMAC(channelSecret, requestBody).
func GenerateSignature(body []byte, channelSecret string) string {
	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature validates the X-Line-Signature header against the raw body.
func VerifySignature(body []byte, signature, channelSecret string) bool {
	expected := GenerateSignature(body, channelSecret)
	return hmac.Equal([]byte(signature), []byte(expected))
}
