package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	autherror "github.com/AnthoniusHendriyanto/secure-auth/internal/errors"
)

const fieldSeparator = ":"

// FieldCipher encrypts individual column values with AES-256-GCM. The
// serialized form is ivHex:cipherHex with a fresh nonce per call.
type FieldCipher struct {
	aead cipher.AEAD
}

// NewFieldCipher takes the process-wide key as 64 hex characters.
func NewFieldCipher(hexKey string) (*FieldCipher, error) {
	key, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil || len(key) != 32 {
		return nil, autherror.ErrInvalidEncryptionKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create aes cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return &FieldCipher{aead: aead}, nil
}

func (c *FieldCipher) EncryptField(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(nonce) + fieldSeparator + hex.EncodeToString(sealed), nil
}

func (c *FieldCipher) DecryptField(value string) (string, error) {
	ivHex, cipherHex, ok := strings.Cut(value, fieldSeparator)
	if !ok {
		// Rows written before a key was configured hold plaintext.
		return value, nil
	}
	nonce, err := hex.DecodeString(ivHex)
	if err != nil || len(nonce) != c.aead.NonceSize() {
		return "", autherror.ErrMalformedCiphertext
	}
	sealed, err := hex.DecodeString(cipherHex)
	if err != nil {
		return "", autherror.ErrMalformedCiphertext
	}
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt field: %w", err)
	}
	return string(plain), nil
}

// GenerateKey returns a random key in the format NewFieldCipher expects.
func GenerateKey() (string, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return hex.EncodeToString(key), nil
}
