package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/AnthoniusHendriyanto/secure-auth/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	err := executeArgs(context.Background(), root, args...)
	return strings.TrimSpace(out.String()), err
}

func TestGenKey(t *testing.T) {
	out, err := run(t, "gen-key")
	require.NoError(t, err)
	assert.Len(t, out, 64)

	_, err = security.NewFieldCipher(out)
	assert.NoError(t, err)
}

func TestTOTPCode(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	want, err := security.NewTOTP("").Code("JBSWY3DPEHPK3PXP", at)
	require.NoError(t, err)

	out, err := run(t, "totp-code", "JBSWY3DPEHPK3PXP", "--at", at.Format(time.RFC3339))
	require.NoError(t, err)
	assert.Equal(t, want, out)

	_, err = run(t, "totp-code", "JBSWY3DPEHPK3PXP", "--at", "yesterday")
	assert.Error(t, err)

	_, err = run(t, "totp-code")
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "hash-password", "Passw0rd!", "--cost", "4")
	require.NoError(t, err)
	assert.NoError(t, security.CheckPassword(out, "Passw0rd!"))
}

func TestMigrate_RequiresDBURL(t *testing.T) {
	t.Setenv("DB_URL", "")

	_, err := run(t, "migrate")
	assert.ErrorContains(t, err, "DB_URL is required")
}
