package domain

import "time"

// Account is owned by the secret store. TOTPSecret holds the stored form,
// which is ciphertext when field encryption is configured.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	TOTPSecret   string
	IsVerified   bool
	VerifyToken  string
	ResetToken   string
	ResetExpires *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LoginHistoryEntry is written once per successful login and never changed.
type LoginHistoryEntry struct {
	AccountID string
	IPAddress string
	CreatedAt time.Time
}

// Principal is the identity proven by a verified access token.
type Principal struct {
	AccountID string
}
