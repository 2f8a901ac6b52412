package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/secure-auth/internal/errors"
	authconstant "github.com/AnthoniusHendriyanto/secure-auth/pkg/constant"
)

// LoginThrottle limits credential guessing against a single account within a
// fixed window.
type LoginThrottle struct {
	store       domain.ThrottleStore
	maxAttempts int64
	window      time.Duration
}

func NewLoginThrottle(store domain.ThrottleStore, maxAttempts int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{
		store:       store,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

func ThrottleKey(email string) string {
	return authconstant.LoginThrottleKeyPrefix + NormalizeEmail(email)
}

func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) (int64, error) {
	count, err := t.store.Increment(ctx, key, t.window)
	if err != nil {
		return 0, fmt.Errorf("failed to record login attempt: %w", err)
	}
	return count, nil
}

// IsBlocked reports whether the window is exhausted without counting an
// attempt. Login enforces the limit through Reserve, not IsBlocked.
func (t *LoginThrottle) IsBlocked(ctx context.Context, key string) (bool, error) {
	count, err := t.store.Count(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to check login attempts: %w", err)
	}
	return count >= t.maxAttempts, nil
}

// Release returns a slot taken by Reserve for an attempt that never reached a
// credential decision.
func (t *LoginThrottle) Release(ctx context.Context, key string) error {
	if err := t.store.Release(ctx, key); err != nil {
		return fmt.Errorf("failed to release login attempt: %w", err)
	}
	return nil
}

func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	if err := t.store.Reset(ctx, key); err != nil {
		return fmt.Errorf("failed to reset login attempts: %w", err)
	}
	return nil
}

// Reserve counts an attempt before credentials are checked, so concurrent
// attempts can never exceed maxAttempts per window. A successful login must
// call Reset.
func (t *LoginThrottle) Reserve(ctx context.Context, key string) error {
	count, err := t.RecordFailure(ctx, key)
	if err != nil {
		return err
	}
	if count > t.maxAttempts {
		return autherror.ErrTooManyLoginAttempts
	}
	return nil
}
