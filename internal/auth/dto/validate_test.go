package dto

import (
	"testing"

	autherror "github.com/AnthoniusHendriyanto/secure-auth/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantErr string
	}{
		{name: "valid register", input: RegisterInput{Email: "a@x.com", Password: "Passw0rd!"}},
		{name: "malformed email", input: RegisterInput{Email: "not-an-email", Password: "Passw0rd!"}, wantErr: "valid email required"},
		{name: "short password", input: RegisterInput{Email: "a@x.com", Password: "short"}, wantErr: "password must be at least 8 characters"},
		{name: "missing email", input: RegisterInput{Password: "Passw0rd!"}, wantErr: "email is required"},
		{name: "login without password", input: LoginInput{Email: "a@x.com"}, wantErr: "password is required"},
		{name: "login ignores code shape", input: LoginInput{Email: "a@x.com", Password: "x", TwoFactorCode: "abc"}},
		{name: "lookup without email", input: TwoFALookupInput{}, wantErr: "email is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, autherror.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
