package domain

//go:generate mockgen -destination=../../mocks/mock_repository.go -package=mocks github.com/AnthoniusHendriyanto/secure-auth/internal/auth/domain AccountRepository,LoginHistoryRepository,ThrottleStore

import (
	"context"
	"time"
)

// AccountRepository returns (nil, nil) from lookups when nothing matches.
// Create must fail with ErrEmailAlreadyInUse when the email is taken, decided
// atomically by the store.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	Create(ctx context.Context, account *Account) error
	UpdateTOTPSecret(ctx context.Context, id, secret string, updatedAt time.Time) error
}

type LoginHistoryRepository interface {
	AppendLoginHistory(ctx context.Context, entry *LoginHistoryEntry) error
	RecentLoginHistory(ctx context.Context, accountID string, limit int) ([]LoginHistoryEntry, error)
}

// ThrottleStore keeps fixed-window counters. Increment is atomic per key and
// starts the window on the first hit. Release undoes one Increment within the
// same window and never drops a count below zero.
type ThrottleStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
	Count(ctx context.Context, key string) (int64, error)
	Release(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
