package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPThrottle rate-limits code issuance per email using a Redis SET NX
// with the cooldown as TTL: the first caller in a window claims the key,
// everyone else waits for it to expire.
type OTPThrottle struct {
	client   *redis.Client
	cooldown time.Duration
}

// NewOTPThrottle wraps a Redis client with the given cooldown window.
func NewOTPThrottle(client *redis.Client, cooldown time.Duration) *OTPThrottle {
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	return &OTPThrottle{client: client, cooldown: cooldown}
}

// Allow reports whether a fresh code may be issued for the email now.
func (t *OTPThrottle) Allow(ctx context.Context, email string) (bool, error) {
	ok, err := t.client.SetNX(ctx, t.key(email), "1", t.cooldown).Result()
	if err != nil {
		return false, fmt.Errorf("otp throttle: %w", err)
	}
	return ok, nil
}

func (t *OTPThrottle) key(email string) string {
	return fmt.Sprintf("otp:resend:%s", email)
}
