package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnthoniusHendriyanto/secure-auth/config"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/dto"
	autherror "github.com/AnthoniusHendriyanto/secure-auth/internal/errors"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/security"
	authconstant "github.com/AnthoniusHendriyanto/secure-auth/pkg/constant"
	"go.uber.org/zap"
)

type Option func(*AuthService)

// WithClock replaces time.Now for TOTP checks and audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *AuthService) {
		s.now = now
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *AuthService) {
		s.logger = logger
	}
}

// AuthService drives register, login, refresh, logout and 2FA management.
type AuthService struct {
	secrets      *SecretStore
	verifier     *CredentialVerifier
	throttle     *LoginThrottle
	audit        *SessionAuditLog
	totp         *security.TOTP
	tokenService TokenGenerator
	hashCost     int
	logger       *zap.Logger
	now          func() time.Time
}

func NewAuthService(
	accounts domain.AccountRepository,
	history domain.LoginHistoryRepository,
	throttleStore domain.ThrottleStore,
	tokenService TokenGenerator,
	cipher *security.FieldCipher,
	cfg *config.Config,
	opts ...Option,
) *AuthService {
	totp := security.NewTOTP(cfg.TOTPIssuer)
	secrets := NewSecretStore(accounts, cipher)

	maxAttempts := cfg.LoginMaxAttempts
	if maxAttempts < 1 {
		maxAttempts = config.DefaultLoginMaxAttempts
	}
	window := time.Duration(cfg.LoginWindowMinutes) * time.Minute
	if window <= 0 {
		window = config.DefaultLoginWindowMinutes * time.Minute
	}
	hashCost := cfg.PasswordHashCost
	if hashCost == 0 {
		hashCost = security.DefaultHashCost
	}

	s := &AuthService{
		secrets:      secrets,
		verifier:     NewCredentialVerifier(secrets, totp),
		throttle:     NewLoginThrottle(throttleStore, maxAttempts, window),
		audit:        NewSessionAuditLog(history),
		totp:         totp,
		tokenService: tokenService,
		hashCost:     hashCost,
		logger:       zap.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*dto.RegisterOutput, error) {
	if err := dto.Validate(input); err != nil {
		return nil, err
	}

	existing, err := s.secrets.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashedPassword, err := security.HashPassword(input.Password, s.hashCost)
	if err != nil {
		return nil, err
	}

	email := NormalizeEmail(input.Email)
	secret, uri, err := s.totp.GenerateSecret(email)
	if err != nil {
		return nil, err
	}

	account, err := s.secrets.CreateAccount(ctx, email, hashedPassword, secret, s.now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("account registered", zap.String("account_id", account.ID))

	return &dto.RegisterOutput{
		Message:  "Registered",
		TwoFAURI: uri,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	if err := dto.Validate(input); err != nil {
		return nil, err
	}

	key := ThrottleKey(input.Email)
	if err := s.throttle.Reserve(ctx, key); err != nil {
		if errors.Is(err, autherror.ErrTooManyLoginAttempts) {
			s.logger.Warn("login throttled", zap.String("ip", input.IPAddress))
		}
		return nil, err
	}

	now := s.now()
	account, err := s.verifier.Verify(ctx, input.Email, input.Password, input.TwoFactorCode, now)
	if err != nil {
		if !errors.Is(err, autherror.ErrInvalidCredentials) {
			if releaseErr := s.throttle.Release(ctx, key); releaseErr != nil {
				s.logger.Warn("failed to release login throttle slot", zap.Error(releaseErr))
			}
		}
		return nil, err
	}

	accessToken, refreshToken, _, err := s.tokenService.Generate(account.ID)
	if err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, account.ID, input.IPAddress, now); err != nil {
		s.logger.Warn("failed to record login history",
			zap.String("account_id", account.ID), zap.Error(err))
	}

	if err := s.throttle.Reset(ctx, key); err != nil {
		s.logger.Warn("failed to reset login throttle",
			zap.String("account_id", account.ID), zap.Error(err))
	}

	return s.tokenResponse(accessToken, refreshToken), nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if refreshToken == "" {
		return nil, autherror.ErrUnauthenticated
	}

	accessToken, _, err := s.tokenService.Refresh(refreshToken)
	if err != nil {
		if isTokenError(err) {
			return nil, autherror.ErrForbidden
		}
		return nil, err
	}

	return s.tokenResponse(accessToken, ""), nil
}

// Logout never fails. Refresh tokens are not tracked server side, so ending
// the session means the caller drops its copy.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	claims, err := s.tokenService.VerifyRefreshToken(refreshToken)
	if err != nil {
		return
	}
	s.logger.Info("session ended", zap.String("account_id", claims.Subject))
}

// Authenticate turns a bearer token into a Principal. A missing token is
// ErrUnauthenticated, a present but bad one is ErrForbidden.
func (s *AuthService) Authenticate(accessToken string) (domain.Principal, error) {
	if accessToken == "" {
		return domain.Principal{}, autherror.ErrUnauthenticated
	}
	claims, err := s.tokenService.VerifyAccessToken(accessToken)
	if err != nil {
		return domain.Principal{}, autherror.ErrForbidden
	}
	return domain.Principal{AccountID: claims.Subject}, nil
}

func (s *AuthService) WhoAmI(ctx context.Context, principal domain.Principal) (*dto.ProfileOutput, error) {
	account, err := s.accountFor(ctx, principal)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileOutput{
		ID:         account.ID,
		Email:      account.Email,
		IsVerified: account.IsVerified,
		CreatedAt:  account.CreatedAt,
		UpdatedAt:  account.UpdatedAt,
	}, nil
}

func (s *AuthService) History(ctx context.Context, principal domain.Principal) ([]dto.HistoryEntryOutput, error) {
	entries, err := s.audit.Recent(ctx, principal.AccountID, authconstant.LoginHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load login history: %w", err)
	}

	out := make([]dto.HistoryEntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistoryEntryOutput{Time: e.CreatedAt, IP: e.IPAddress})
	}
	return out, nil
}

func (s *AuthService) TwoFAURI(ctx context.Context, principal domain.Principal) (string, error) {
	account, err := s.accountFor(ctx, principal)
	if err != nil {
		return "", err
	}
	return s.provisioningURI(account)
}

// TwoFAQRCode renders the current provisioning URI as a PNG.
func (s *AuthService) TwoFAQRCode(ctx context.Context, principal domain.Principal) ([]byte, error) {
	uri, err := s.TwoFAURI(ctx, principal)
	if err != nil {
		return nil, err
	}
	return security.QRCodePNG(uri, 0)
}

// RegenerateTwoFA replaces the shared secret. Codes from the old secret stop
// working immediately.
func (s *AuthService) RegenerateTwoFA(ctx context.Context, principal domain.Principal) (string, error) {
	account, err := s.accountFor(ctx, principal)
	if err != nil {
		return "", err
	}

	secret, uri, err := s.totp.GenerateSecret(account.Email)
	if err != nil {
		return "", err
	}

	if err := s.secrets.UpdateTOTPSecret(ctx, account.ID, secret, s.now()); err != nil {
		if errors.Is(err, autherror.ErrNotFound) {
			return "", autherror.ErrUnauthenticated
		}
		return "", err
	}

	s.logger.Info("2fa secret regenerated", zap.String("account_id", account.ID))
	return uri, nil
}

// LookupTwoFAURIByEmail is the unauthenticated enrollment lookup. It reveals
// whether an account exists.
func (s *AuthService) LookupTwoFAURIByEmail(ctx context.Context, input dto.TwoFALookupInput) (string, error) {
	if err := dto.Validate(input); err != nil {
		return "", err
	}

	account, err := s.secrets.FindByEmail(ctx, input.Email)
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", autherror.ErrNotFound
	}
	return s.provisioningURI(account)
}

func (s *AuthService) accountFor(ctx context.Context, principal domain.Principal) (*domain.Account, error) {
	account, err := s.secrets.FindByID(ctx, principal.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, autherror.ErrUnauthenticated
	}
	return account, nil
}

func (s *AuthService) provisioningURI(account *domain.Account) (string, error) {
	secret, err := s.secrets.TOTPSecret(account)
	if err != nil {
		return "", err
	}
	return s.totp.ProvisioningURI(account.Email, secret), nil
}

func (s *AuthService) tokenResponse(accessToken, refreshToken string) *dto.TokenResponse {
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		TokenType:    authconstant.DefaultTokenType,
		ExpiresIn:    int(s.tokenService.GetAccessTokenExpiry().Seconds()),
		RefreshToken: refreshToken,
		RefreshTTL:   int(s.tokenService.GetRefreshTokenExpiry().Seconds()),
	}
}

func isTokenError(err error) bool {
	return errors.Is(err, autherror.ErrTokenExpired) || errors.Is(err, autherror.ErrTokenInvalid)
}
