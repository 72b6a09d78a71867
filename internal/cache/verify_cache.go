package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// VerifyCache stores short-lived LINE account verification codes.
// A code links a chat user to an application account: the code is handed out
// through the web UI and redeemed by typing it into the LINE chat.
type VerifyCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewVerifyCache creates a new VerifyCache with the given code lifetime.
func NewVerifyCache(redis *RedisClient, ttl time.Duration) *VerifyCache {
	return &VerifyCache{
		redis: redis,
		ttl:   ttl,
	}
}

// keyByCode returns the primary Redis key for code lookup.
func (c *VerifyCache) keyByCode(code string) string {
	return fmt.Sprintf("line:verify:code:%s", code)
}

// keyByUser returns the secondary Redis key holding a user's active code.
func (c *VerifyCache) keyByUser(userID int64) string {
	return fmt.Sprintf("line:verify:user:%d", userID)
}

// Set stores a verification code with double caching strategy.
// Primary key: line:verify:code:{code} -> userID
// Secondary key: line:verify:user:{userId} -> code
// The secondary key lets a new code invalidate the user's previous one.
func (c *VerifyCache) Set(ctx context.Context, code string, userID int64) error {
	// Invalidate any previous code issued to the same user.
	if old, err := c.redis.Get(ctx, c.keyByUser(userID)); err == nil && old != "" {
		_ = c.redis.Delete(ctx, c.keyByCode(old))
	}

	if err := c.redis.Set(ctx, c.keyByCode(code), strconv.FormatInt(userID, 10), c.ttl); err != nil {
		return fmt.Errorf("failed to set code key: %w", err)
	}
	if err := c.redis.Set(ctx, c.keyByUser(userID), code, c.ttl); err != nil {
		return fmt.Errorf("failed to set user key: %w", err)
	}

	return nil
}

// Redeem looks up a code, returning the owning user ID, and deletes both keys
// so a code can only be used once.
func (c *VerifyCache) Redeem(ctx context.Context, code string) (int64, error) {
	raw, err := c.redis.Get(ctx, c.keyByCode(code))
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt verification code entry: %w", err)
	}

	_ = c.redis.Delete(ctx, c.keyByCode(code), c.keyByUser(userID))
	return userID, nil
}
