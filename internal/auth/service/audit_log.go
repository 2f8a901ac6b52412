package service

import (
	"context"
	"time"

	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/domain"
	authconstant "github.com/AnthoniusHendriyanto/secure-auth/pkg/constant"
)

// SessionAuditLog is an append-only ledger of successful logins.
type SessionAuditLog struct {
	repo domain.LoginHistoryRepository
}

func NewSessionAuditLog(repo domain.LoginHistoryRepository) *SessionAuditLog {
	return &SessionAuditLog{repo: repo}
}

func (l *SessionAuditLog) Record(ctx context.Context, accountID, originAddress string, at time.Time) error {
	return l.repo.AppendLoginHistory(ctx, &domain.LoginHistoryEntry{
		AccountID: accountID,
		IPAddress: originAddress,
		CreatedAt: at,
	})
}

// Recent returns at most limit entries, newest first. limit is clamped to
// [1, LoginHistoryLimit].
func (l *SessionAuditLog) Recent(ctx context.Context, accountID string, limit int) ([]domain.LoginHistoryEntry, error) {
	if limit <= 0 || limit > authconstant.LoginHistoryLimit {
		limit = authconstant.LoginHistoryLimit
	}
	entries, err := l.repo.RecentLoginHistory(ctx, accountID, limit)
	if err != nil {
		return nil, err
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
