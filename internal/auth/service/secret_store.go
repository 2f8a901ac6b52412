package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/security"
	"github.com/google/uuid"
)

// SecretStore owns account records. It normalizes emails and keeps the TOTP
// secret encrypted at rest when a field cipher is configured.
type SecretStore struct {
	repo   domain.AccountRepository
	cipher *security.FieldCipher
}

func NewSecretStore(repo domain.AccountRepository, cipher *security.FieldCipher) *SecretStore {
	return &SecretStore{repo: repo, cipher: cipher}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *SecretStore) CreateAccount(ctx context.Context, email, passwordHash, totpSecret string, now time.Time) (*domain.Account, error) {
	stored, err := s.seal(totpSecret)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:           uuid.New().String(),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		TOTPSecret:   stored,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *SecretStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return s.repo.GetByEmail(ctx, NormalizeEmail(email))
}

func (s *SecretStore) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *SecretStore) UpdateTOTPSecret(ctx context.Context, id, totpSecret string, now time.Time) error {
	stored, err := s.seal(totpSecret)
	if err != nil {
		return err
	}
	return s.repo.UpdateTOTPSecret(ctx, id, stored, now)
}

// TOTPSecret returns the plaintext shared secret of account. Callers must not
// keep it past the current request.
func (s *SecretStore) TOTPSecret(account *domain.Account) (string, error) {
	if s.cipher == nil {
		return account.TOTPSecret, nil
	}
	plain, err := s.cipher.DecryptField(account.TOTPSecret)
	if err != nil {
		return "", fmt.Errorf("decrypt totp secret: %w", err)
	}
	return plain, nil
}

func (s *SecretStore) seal(totpSecret string) (string, error) {
	if s.cipher == nil {
		return totpSecret, nil
	}
	enc, err := s.cipher.EncryptField(totpSecret)
	if err != nil {
		return "", fmt.Errorf("encrypt totp secret: %w", err)
	}
	return enc, nil
}
