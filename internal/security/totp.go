package security

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/AnthoniusHendriyanto/secure-auth/pkg/constant"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const totpSecretSize = 20

// TOTP generates enrollment secrets and validates codes for a fixed issuer.
// Validation accepts the current 30 second step only.
type TOTP struct {
	issuer string
}

func NewTOTP(issuer string) *TOTP {
	if strings.TrimSpace(issuer) == "" {
		issuer = constant.DefaultTOTPIssuer
	}
	return &TOTP{issuer: issuer}
}

func (t *TOTP) Issuer() string {
	return t.issuer
}

// GenerateSecret returns a fresh base32 secret and its provisioning URI.
func (t *TOTP) GenerateSecret(accountLabel string) (string, string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      t.issuer,
		AccountName: accountLabel,
		Period:      constant.TOTPPeriodSeconds,
		SecretSize:  totpSecretSize,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", fmt.Errorf("generate totp secret: %w", err)
	}
	secret := key.Secret()
	return secret, t.ProvisioningURI(accountLabel, secret), nil
}

// ProvisioningURI renders otpauth://totp/<issuer>:<label>?secret=<secret>&issuer=<issuer>.
func (t *TOTP) ProvisioningURI(accountLabel, secret string) string {
	label := url.PathEscape(t.issuer + ":" + accountLabel)
	return "otpauth://totp/" + label +
		"?secret=" + url.QueryEscape(secret) +
		"&issuer=" + url.QueryEscape(t.issuer)
}

func (t *TOTP) Validate(secret, code string, now time.Time) bool {
	if !isNumericCode(code) {
		return false
	}
	valid, err := totp.ValidateCustom(code, secret, now.UTC(), validateOpts())
	if err != nil {
		return false
	}
	return valid
}

// Code derives the code for the step containing at.
func (t *TOTP) Code(secret string, at time.Time) (string, error) {
	return totp.GenerateCodeCustom(secret, at.UTC(), validateOpts())
}

func validateOpts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    constant.TOTPPeriodSeconds,
		Skew:      0,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}

func isNumericCode(code string) bool {
	if len(code) != constant.TOTPDigits {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
