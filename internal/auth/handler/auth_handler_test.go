package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AnthoniusHendriyanto/secure-auth/config"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/handler"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/service"
	autherror "github.com/AnthoniusHendriyanto/secure-auth/internal/errors"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/mocks"
	authconstant "github.com/AnthoniusHendriyanto/secure-auth/pkg/constant"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockDeps struct {
	accounts *mocks.MockAccountRepository
	history  *mocks.MockLoginHistoryRepository
	throttle *mocks.MockThrottleStore
	tokens   *mocks.MockTokenGenerator
	cfg      *config.Config
	handler  *handler.AuthHandler
}

func newMockDeps(t *testing.T) *mockDeps {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	d := &mockDeps{
		accounts: mocks.NewMockAccountRepository(ctrl),
		history:  mocks.NewMockLoginHistoryRepository(ctrl),
		throttle: mocks.NewMockThrottleStore(ctrl),
		tokens:   mocks.NewMockTokenGenerator(ctrl),
		cfg: &config.Config{
			TOTPIssuer:         "SecureAuth",
			LoginMaxAttempts:   5,
			LoginWindowMinutes: 15,
			PasswordHashCost:   bcrypt.MinCost,
			TwoFALookupEnabled: true,
		},
	}
	authService := service.NewAuthService(d.accounts, d.history, d.throttle, d.tokens, nil, d.cfg)
	d.handler = handler.NewAuthHandler(authService, d.cfg, nil)
	return d
}

func jsonRequest(method, path string, body any) *http.Request {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	d := newMockDeps(t)

	app := fiber.New()
	app.Post("/register", d.handler.Register)

	t.Run("success", func(t *testing.T) {
		input := dto.RegisterInput{Email: "Test@Example.com", Password: "password123"}

		d.accounts.EXPECT().GetByEmail(gomock.Any(), "test@example.com").Return(nil, nil)
		d.accounts.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/register", input))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Registered", body["message"])
		assert.Contains(t, body["twoFAUri"], "secret=")
		assert.NotContains(t, body, "password")
	})

	t.Run("bad request", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/register", ""))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("short password", func(t *testing.T) {
		input := dto.RegisterInput{Email: "test@example.com", Password: "short"}

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/register", input))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeBody(t, resp)["error"], "at least 8")
	})

	t.Run("duplicate email", func(t *testing.T) {
		input := dto.RegisterInput{Email: "test@example.com", Password: "password123"}
		d.accounts.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(&domain.Account{ID: "existing"}, nil)

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/register", input))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, autherror.ErrEmailAlreadyInUse.Error(), decodeBody(t, resp)["error"])
	})

	t.Run("storage failure is not leaked", func(t *testing.T) {
		input := dto.RegisterInput{Email: "test@example.com", Password: "password123"}
		d.accounts.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)
		d.accounts.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection reset by peer"))

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/register", input))
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "internal server error", decodeBody(t, resp)["error"])
	})
}

func TestLogin(t *testing.T) {
	d := newMockDeps(t)

	app := fiber.New()
	app.Post("/login", d.handler.Login)

	t.Run("unauthorized - unknown account", func(t *testing.T) {
		input := dto.LoginInput{Email: "test@example.com", Password: "wrong-password", TwoFactorCode: "123456"}

		d.throttle.EXPECT().Increment(gomock.Any(), "login:test@example.com", 15*time.Minute).Return(int64(1), nil)
		d.accounts.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/login", input), -1)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, autherror.ErrInvalidCredentials.Error(), decodeBody(t, resp)["error"])
	})

	t.Run("too many requests", func(t *testing.T) {
		input := dto.LoginInput{Email: "test@example.com", Password: "password", TwoFactorCode: "123456"}

		d.throttle.EXPECT().Increment(gomock.Any(), "login:test@example.com", gomock.Any()).Return(int64(6), nil)

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/login", input))
		assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	})

	t.Run("validation error is not throttled", func(t *testing.T) {
		input := dto.LoginInput{Email: "not-an-email", Password: "password"}

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/login", input))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeBody(t, resp)["error"], "valid email required")
	})

	t.Run("bad request - invalid json", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/login", "{invalid-json"))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestRefresh(t *testing.T) {
	d := newMockDeps(t)

	app := fiber.New()
	app.Post("/refresh", d.handler.Refresh)

	t.Run("success", func(t *testing.T) {
		d.tokens.EXPECT().Refresh("valid-token").Return("new-access", time.Now().Add(15*time.Minute), nil)
		d.tokens.EXPECT().GetAccessTokenExpiry().Return(15 * time.Minute)
		d.tokens.EXPECT().GetRefreshTokenExpiry().Return(7 * 24 * time.Hour)

		req := jsonRequest(http.MethodPost, "/refresh", nil)
		req.AddCookie(&http.Cookie{Name: authconstant.RefreshTokenCookie, Value: "valid-token"})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Nil(t, findCookie(resp, authconstant.RefreshTokenCookie))

		body := decodeBody(t, resp)
		assert.Equal(t, "new-access", body["accessToken"])
		assert.Equal(t, "Bearer", body["tokenType"])
		assert.EqualValues(t, 900, body["expiresIn"])
	})

	t.Run("missing cookie", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/refresh", nil))
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		d.tokens.EXPECT().Refresh("expired-token").Return("", time.Time{}, autherror.ErrTokenExpired)

		req := jsonRequest(http.MethodPost, "/refresh", nil)
		req.AddCookie(&http.Cookie{Name: authconstant.RefreshTokenCookie, Value: "expired-token"})

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestLogout(t *testing.T) {
	d := newMockDeps(t)

	app := fiber.New()
	app.Post("/logout", d.handler.Logout)

	t.Run("clears cookie", func(t *testing.T) {
		d.tokens.EXPECT().VerifyRefreshToken("valid-token").Return(&service.JWTCustomClaims{}, nil)

		req := jsonRequest(http.MethodPost, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: authconstant.RefreshTokenCookie, Value: "valid-token"})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

		cookie := findCookie(resp, authconstant.RefreshTokenCookie)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.True(t, cookie.Expires.Before(time.Now()))
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
		assert.Equal(t, authconstant.RefreshCookiePath, cookie.Path)
	})

	t.Run("no session is still 204", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/logout", nil))
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	})

	t.Run("invalid token is still 204", func(t *testing.T) {
		d.tokens.EXPECT().VerifyRefreshToken("garbage").Return(nil, autherror.ErrTokenInvalid)

		req := jsonRequest(http.MethodPost, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: authconstant.RefreshTokenCookie, Value: "garbage"})

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	})
}

func TestHistory(t *testing.T) {
	d := newMockDeps(t)

	app := fiber.New()
	handler.RegisterRoutes(app, d.handler)

	t.Run("success", func(t *testing.T) {
		newest := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		d.tokens.EXPECT().VerifyAccessToken("access").Return(claimsFor("account-1"), nil)
		d.history.EXPECT().RecentLoginHistory(gomock.Any(), "account-1", authconstant.LoginHistoryLimit).
			Return([]domain.LoginHistoryEntry{
				{AccountID: "account-1", IPAddress: "10.0.0.2", CreatedAt: newest},
				{AccountID: "account-1", IPAddress: "10.0.0.1", CreatedAt: newest.Add(-time.Hour)},
			}, nil)

		req := jsonRequest(http.MethodGet, "/api/auth/history", nil)
		req.Header.Set("Authorization", "Bearer access")

		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var entries []dto.HistoryEntryOutput
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
		require.Len(t, entries, 2)
		assert.Equal(t, "10.0.0.2", entries[0].IP)
		assert.True(t, entries[0].Time.Equal(newest))
	})

	t.Run("storage failure", func(t *testing.T) {
		d.tokens.EXPECT().VerifyAccessToken("access").Return(claimsFor("account-1"), nil)
		d.history.EXPECT().RecentLoginHistory(gomock.Any(), "account-1", gomock.Any()).
			Return(nil, errors.New("db down"))

		req := jsonRequest(http.MethodGet, "/api/auth/history", nil)
		req.Header.Set("Authorization", "Bearer access")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}

func TestMe(t *testing.T) {
	d := newMockDeps(t)

	app := fiber.New()
	handler.RegisterRoutes(app, d.handler)

	t.Run("success omits secrets", func(t *testing.T) {
		d.tokens.EXPECT().VerifyAccessToken("access").Return(claimsFor("account-1"), nil)
		d.accounts.EXPECT().GetByID(gomock.Any(), "account-1").Return(&domain.Account{
			ID:           "account-1",
			Email:        "a@x.com",
			PasswordHash: "$2a$04$hash",
			TOTPSecret:   "JBSWY3DPEHPK3PXP",
		}, nil)

		req := jsonRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer access")

		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "a@x.com", body["email"])
		assert.Equal(t, "account-1", body["id"])
		for _, v := range body {
			assert.NotEqual(t, "$2a$04$hash", v)
			assert.NotEqual(t, "JBSWY3DPEHPK3PXP", v)
		}
	})

	t.Run("deleted account", func(t *testing.T) {
		d.tokens.EXPECT().VerifyAccessToken("access").Return(claimsFor("gone"), nil)
		d.accounts.EXPECT().GetByID(gomock.Any(), "gone").Return(nil, nil)

		req := jsonRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer access")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func claimsFor(accountID string) *service.JWTCustomClaims {
	claims := &service.JWTCustomClaims{TokenType: authconstant.AccessTokenType}
	claims.Subject = accountID
	return claims
}
