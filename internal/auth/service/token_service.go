package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/AnthoniusHendriyanto/secure-auth/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	autherror "github.com/AnthoniusHendriyanto/secure-auth/internal/errors"
	authconstant "github.com/AnthoniusHendriyanto/secure-auth/pkg/constant"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenGenerator interface {
	Generate(accountID string) (string, string, time.Time, error)
	IssueAccessToken(accountID string) (string, time.Time, error)
	IssueRefreshToken(accountID string) (string, time.Time, error)
	VerifyAccessToken(tokenString string) (*JWTCustomClaims, error)
	VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error)
	Refresh(refreshToken string) (string, time.Time, error)
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
}

// TokenService signs access and refresh tokens with separate secrets so that
// one class can never be accepted as the other.
type TokenService struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
}

func NewTokenService(accessSecret, refreshSecret string, accessMinutes, refreshMinutes int) *TokenService {
	return &TokenService{
		AccessTokenSecret:  accessSecret,
		RefreshTokenSecret: refreshSecret,
		AccessTokenExpiry:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenExpiry: time.Duration(refreshMinutes) * time.Minute,
	}
}

// Generate issues a fresh pair and returns the access token expiry.
func (ts *TokenService) Generate(accountID string) (string, string, time.Time, error) {
	accessToken, accessExpiry, err := ts.IssueAccessToken(accountID)
	if err != nil {
		return "", "", time.Time{}, err
	}

	refreshToken, _, err := ts.IssueRefreshToken(accountID)
	if err != nil {
		return "", "", time.Time{}, err
	}

	return accessToken, refreshToken, accessExpiry, nil
}

func (ts *TokenService) IssueAccessToken(accountID string) (string, time.Time, error) {
	return ts.sign(accountID, authconstant.AccessTokenType, ts.AccessTokenSecret, ts.AccessTokenExpiry)
}

func (ts *TokenService) IssueRefreshToken(accountID string) (string, time.Time, error) {
	return ts.sign(accountID, authconstant.RefreshTokenType, ts.RefreshTokenSecret, ts.RefreshTokenExpiry)
}

func (ts *TokenService) sign(accountID, tokenType, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := JWTCustomClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   accountID,
			Issuer:    authconstant.TokenIssuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, expiresAt, nil
}

func (ts *TokenService) GetAccessTokenExpiry() time.Duration {
	return ts.AccessTokenExpiry
}

func (ts *TokenService) GetRefreshTokenExpiry() time.Duration {
	return ts.RefreshTokenExpiry
}

// VerifyAccessToken parses and validates the given access token string.
func (ts *TokenService) VerifyAccessToken(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, authconstant.AccessTokenType, ts.AccessTokenSecret)
}

// VerifyRefreshToken parses and validates the given refresh token string.
func (ts *TokenService) VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, authconstant.RefreshTokenType, ts.RefreshTokenSecret)
}

// Refresh mints a new access token for the subject of a valid refresh token.
// The refresh token itself is left untouched.
func (ts *TokenService) Refresh(refreshToken string) (string, time.Time, error) {
	claims, err := ts.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", time.Time{}, err
	}
	return ts.IssueAccessToken(claims.Subject)
}

func (ts *TokenService) verify(tokenString, tokenType, secret string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(authconstant.TokenIssuer),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherror.ErrTokenExpired
		}
		return nil, autherror.ErrTokenInvalid
	}

	if !token.Valid || claims.TokenType != tokenType || claims.Subject == "" {
		return nil, autherror.ErrTokenInvalid
	}

	return claims, nil
}
