package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/secure-auth/internal/errors"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/security"
)

// CredentialVerifier checks password then TOTP code. Every credential failure,
// including an unknown email, is reported as ErrInvalidCredentials.
type CredentialVerifier struct {
	secrets *SecretStore
	totp    *security.TOTP
}

func NewCredentialVerifier(secrets *SecretStore, totp *security.TOTP) *CredentialVerifier {
	return &CredentialVerifier{secrets: secrets, totp: totp}
}

func (v *CredentialVerifier) Verify(ctx context.Context, email, password, totpCode string, now time.Time) (*domain.Account, error) {
	account, err := v.secrets.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}

	if account == nil {
		security.BurnPasswordCheck(password)
		return nil, autherror.ErrInvalidCredentials
	}

	if err := security.CheckPassword(account.PasswordHash, password); err != nil {
		return nil, autherror.ErrInvalidCredentials
	}

	secret, err := v.secrets.TOTPSecret(account)
	if err != nil {
		return nil, err
	}

	if !v.totp.Validate(secret, totpCode, now) {
		return nil, autherror.ErrInvalidCredentials
	}

	return account, nil
}
