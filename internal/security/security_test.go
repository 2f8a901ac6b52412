package security

import (
	"bytes"
	"net/url"
	"strings"
	"testing"
	"time"

	autherror "github.com/AnthoniusHendriyanto/secure-auth/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testKey = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

func TestPassword(t *testing.T) {
	hash, err := HashPassword("Passw0rd!", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd!", hash)

	assert.NoError(t, CheckPassword(hash, "Passw0rd!"))
	assert.ErrorIs(t, CheckPassword(hash, "passw0rd!"), ErrInvalidPassword)
	assert.ErrorIs(t, CheckPassword("not-a-hash", "Passw0rd!"), ErrInvalidPassword)

	// salted: same password, different hash
	other, err := HashPassword("Passw0rd!", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestTOTP_GenerateSecret(t *testing.T) {
	tp := NewTOTP("SecureAuth")

	secret, uri, err := tp.GenerateSecret("a@x.com")
	require.NoError(t, err)
	assert.NotEmpty(t, secret)
	assert.True(t, strings.HasPrefix(uri, "otpauth://totp/SecureAuth:a@x.com?"), uri)

	parsed, err := url.Parse(uri)
	require.NoError(t, err)
	assert.Equal(t, secret, parsed.Query().Get("secret"))
	assert.Equal(t, "SecureAuth", parsed.Query().Get("issuer"))

	next, _, err := tp.GenerateSecret("a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, secret, next)
}

func TestTOTP_ProvisioningURIEscapesIssuer(t *testing.T) {
	tp := NewTOTP("Secure Auth")
	uri := tp.ProvisioningURI("a@x.com", "ABC")
	assert.Equal(t, "otpauth://totp/Secure%20Auth:a@x.com?secret=ABC&issuer=Secure+Auth", uri)
}

func TestNewTOTP_DefaultIssuer(t *testing.T) {
	assert.Equal(t, "SecureAuth", NewTOTP("  ").Issuer())
}

func TestTOTP_Validate(t *testing.T) {
	tp := NewTOTP("SecureAuth")
	secret, _, err := tp.GenerateSecret("a@x.com")
	require.NoError(t, err)

	// middle of a step so neighbours are unambiguous
	now := time.Unix(1_700_000_015, 0)

	current, err := tp.Code(secret, now)
	require.NoError(t, err)
	previous, err := tp.Code(secret, now.Add(-30*time.Second))
	require.NoError(t, err)
	next, err := tp.Code(secret, now.Add(30*time.Second))
	require.NoError(t, err)

	tests := []struct {
		name  string
		code  string
		valid bool
	}{
		{name: "current step", code: current, valid: true},
		{name: "previous step", code: previous, valid: previous == current},
		{name: "next step", code: next, valid: next == current},
		{name: "too short", code: "12345", valid: false},
		{name: "non numeric", code: "12a456", valid: false},
		{name: "empty", code: "", valid: false},
		{name: "padded", code: " " + current, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tp.Validate(secret, tt.code, now))
		})
	}
}

func TestTOTP_ValidateGarbageSecret(t *testing.T) {
	tp := NewTOTP("SecureAuth")
	assert.False(t, tp.Validate("!!not-base32!!", "123456", time.Now()))
}

func TestFieldCipher(t *testing.T) {
	c, err := NewFieldCipher(testKey)
	require.NoError(t, err)

	t.Run("round trip with ivHex:cipherHex format", func(t *testing.T) {
		enc, err := c.EncryptField("JBSWY3DPEHPK3PXP")
		require.NoError(t, err)

		parts := strings.Split(enc, ":")
		require.Len(t, parts, 2)
		assert.NotContains(t, enc, "JBSWY3DPEHPK3PXP")

		dec, err := c.DecryptField(enc)
		require.NoError(t, err)
		assert.Equal(t, "JBSWY3DPEHPK3PXP", dec)
	})

	t.Run("fresh iv per call", func(t *testing.T) {
		a, err := c.EncryptField("same")
		require.NoError(t, err)
		b, err := c.EncryptField("same")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("legacy plaintext passes through", func(t *testing.T) {
		dec, err := c.DecryptField("JBSWY3DPEHPK3PXP")
		require.NoError(t, err)
		assert.Equal(t, "JBSWY3DPEHPK3PXP", dec)
	})

	t.Run("malformed hex", func(t *testing.T) {
		_, err := c.DecryptField("zz:zz")
		assert.ErrorIs(t, err, autherror.ErrMalformedCiphertext)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		enc, err := c.EncryptField("secret")
		require.NoError(t, err)
		last := enc[len(enc)-1]
		flipped := byte('0')
		if last == '0' {
			flipped = '1'
		}
		_, err = c.DecryptField(enc[:len(enc)-1] + string(flipped))
		assert.Error(t, err)
	})

	t.Run("wrong key", func(t *testing.T) {
		enc, err := c.EncryptField("secret")
		require.NoError(t, err)
		other, err := NewFieldCipher(strings.Repeat("ab", 32))
		require.NoError(t, err)
		_, err = other.DecryptField(enc)
		assert.Error(t, err)
	})
}

func TestNewFieldCipher_InvalidKey(t *testing.T) {
	for _, key := range []string{"", "abcd", strings.Repeat("zz", 32), strings.Repeat("ab", 16)} {
		_, err := NewFieldCipher(key)
		assert.ErrorIs(t, err, autherror.ErrInvalidEncryptionKey, key)
	}
}

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	assert.Len(t, key, 64)

	_, err = NewFieldCipher(key)
	assert.NoError(t, err)
}

func TestQRCodePNG(t *testing.T) {
	png, err := QRCodePNG("otpauth://totp/SecureAuth:a@x.com?secret=ABC&issuer=SecureAuth", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
