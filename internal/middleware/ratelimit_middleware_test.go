package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailedLoginRateLimiter(t *testing.T) {
	rl := NewFailedLoginRateLimiter()

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "attempt %d should pass", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"))

	// Other addresses are independent
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestFailedLoginRateLimiterClear(t *testing.T) {
	rl := NewFailedLoginRateLimiter()

	for i := 0; i < 5; i++ {
		rl.Allow("10.0.0.1")
	}
	assert.False(t, rl.Allow("10.0.0.1"))

	rl.Clear("10.0.0.1")
	assert.True(t, rl.Allow("10.0.0.1"))
}
