package handler

import (
	"errors"
	"time"

	"github.com/AnthoniusHendriyanto/secure-auth/config"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/service"
	autherror "github.com/AnthoniusHendriyanto/secure-auth/internal/errors"
	authconstant "github.com/AnthoniusHendriyanto/secure-auth/pkg/constant"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{authService: authService, cfg: cfg, logger: logger}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	out, err := h.authService.Register(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	// c.IP may alias the request buffer when a proxy header is configured.
	input.IPAddress = utils.CopyString(c.IP())

	tokens, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}

	h.setRefreshCookie(c, tokens.RefreshToken, tokens.RefreshTTL)
	return c.Status(fiber.StatusOK).JSON(tokens)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	tokens, err := h.authService.Refresh(c.UserContext(), c.Cookies(authconstant.RefreshTokenCookie))
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tokens)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.authService.Logout(c.UserContext(), c.Cookies(authconstant.RefreshTokenCookie))
	h.clearRefreshCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	profile, err := h.authService.WhoAmI(c.UserContext(), principal(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(profile)
}

func (h *AuthHandler) History(c *fiber.Ctx) error {
	entries, err := h.authService.History(c.UserContext(), principal(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(entries)
}

func (h *AuthHandler) TwoFA(c *fiber.Ctx) error {
	uri, err := h.authService.TwoFAURI(c.UserContext(), principal(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.TwoFAURIOutput{TwoFAURI: uri})
}

func (h *AuthHandler) TwoFAQR(c *fiber.Ctx) error {
	png, err := h.authService.TwoFAQRCode(c.UserContext(), principal(c))
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(png)
}

func (h *AuthHandler) RegenerateTwoFA(c *fiber.Ctx) error {
	uri, err := h.authService.RegenerateTwoFA(c.UserContext(), principal(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.TwoFAURIOutput{TwoFAURI: uri})
}

func (h *AuthHandler) LookupTwoFAURI(c *fiber.Ctx) error {
	var input dto.TwoFALookupInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	uri, err := h.authService.LookupTwoFAURIByEmail(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.TwoFAURIOutput{TwoFAURI: uri})
}

// fail writes the caller-visible outcome for err. Unknown errors are logged
// and reported without detail.
func (h *AuthHandler) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, autherror.ErrValidation),
		errors.Is(err, autherror.ErrEmailAlreadyInUse),
		errors.Is(err, autherror.ErrInvalidCredentials):
		return fiber.StatusBadRequest
	case errors.Is(err, autherror.ErrTooManyLoginAttempts):
		return fiber.StatusTooManyRequests
	case errors.Is(err, autherror.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, autherror.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, autherror.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, value string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     authconstant.RefreshTokenCookie,
		Value:    value,
		Path:     authconstant.RefreshCookiePath,
		MaxAge:   maxAge,
		Secure:   h.cfg.IsProduction(),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// clearRefreshCookie repeats the attributes of setRefreshCookie so browsers
// replace the stored cookie.
func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authconstant.RefreshTokenCookie,
		Value:    "",
		Path:     authconstant.RefreshCookiePath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   h.cfg.IsProduction(),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func principal(c *fiber.Ctx) domain.Principal {
	p, _ := c.Locals(authconstant.LocalsAccountID).(domain.Principal)
	return p
}
