package linemsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"events":[{"type":"message"}]}`)
	secret := "channel-secret"

	sig := GenerateSignature(body, secret)
	assert.NotEmpty(t, sig)
	assert.True(t, VerifySignature(body, sig, secret))
}

func TestVerifySignatureRejectsTamperedBody(t *testing.T) {
	body := []byte(`{"events":[]}`)
	sig := GenerateSignature(body, "channel-secret")

	assert.False(t, VerifySignature([]byte(`{"events":[{}]}`), sig, "channel-secret"))
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	body := []byte(`{"events":[]}`)
	sig := GenerateSignature(body, "secret-a")

	assert.False(t, VerifySignature(body, sig, "secret-b"))
}

func TestVerifySignatureRejectsEmptySignature(t *testing.T) {
	assert.False(t, VerifySignature([]byte("body"), "", "secret"))
}
