package redis

import (
	"context"
	"errors"
	"strings"
	"time"
)

var errNoClient = errors.New("redis client not initialized")

// OTPThrottle enforces a minimum interval between two one-time codes issued
// for the same email and purpose.
type OTPThrottle struct {
	interval time.Duration
	prefix   string
}

// NewOTPThrottle creates a throttle. A non-positive interval disables it.
func NewOTPThrottle(interval time.Duration) *OTPThrottle {
	return &OTPThrottle{interval: interval, prefix: "otp:throttle:"}
}

// Allow reports whether a new code may be issued now and, if so, starts the
// cooldown window. Errors from the store are returned alongside allowed=true.
func (t *OTPThrottle) Allow(ctx context.Context, purpose, email string) (bool, error) {
	if t.interval <= 0 {
		return true, nil
	}
	if client == nil {
		return true, errNoClient
	}

	key := t.prefix + purpose + ":" + strings.ToLower(strings.TrimSpace(email))
	ok, err := SetNX(ctx, key, time.Now().Unix(), t.interval)
	if err != nil {
		return true, err
	}
	return ok, nil
}

// Reset clears the cooldown window, used when issuance fails after Allow.
func (t *OTPThrottle) Reset(ctx context.Context, purpose, email string) error {
	if t.interval <= 0 || client == nil {
		return nil
	}
	return Del(ctx, t.prefix+purpose+":"+strings.ToLower(strings.TrimSpace(email)))
}
