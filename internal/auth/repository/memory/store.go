// Package memory holds process-local stores used when no database is
// configured and in tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/secure-auth/internal/errors"
)

// Store implements AccountRepository and LoginHistoryRepository. Records are
// copied in and out so callers never share memory with the store.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	byEmail  map[string]string
	history  map[string][]domain.LoginHistoryEntry
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]domain.Account),
		byEmail:  make(map[string]string),
		history:  make(map[string][]domain.LoginHistoryEntry),
	}
}

func (s *Store) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}
	account := s.accounts[id]
	return &account, nil
}

func (s *Store) GetByID(_ context.Context, id string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

// Create checks and inserts under one lock, so only one of several racing
// registrations for an email succeeds.
func (s *Store) Create(_ context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[account.Email]; taken {
		return autherror.ErrEmailAlreadyInUse
	}
	s.accounts[account.ID] = *account
	s.byEmail[account.Email] = account.ID
	return nil
}

func (s *Store) UpdateTOTPSecret(_ context.Context, id, secret string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return autherror.ErrNotFound
	}
	account.TOTPSecret = secret
	account.UpdatedAt = updatedAt
	s.accounts[id] = account
	return nil
}

func (s *Store) AppendLoginHistory(_ context.Context, entry *domain.LoginHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history[entry.AccountID] = append(s.history[entry.AccountID], *entry)
	return nil
}

// RecentLoginHistory returns newest first. Entries with equal timestamps keep
// reverse insertion order.
func (s *Store) RecentLoginHistory(_ context.Context, accountID string, limit int) ([]domain.LoginHistoryEntry, error) {
	s.mu.RLock()
	entries := make([]domain.LoginHistoryEntry, len(s.history[accountID]))
	copy(entries, s.history[accountID])
	s.mu.RUnlock()

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
