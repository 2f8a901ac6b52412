package dto

import (
	"time"
)

// ProfileOutput never carries the password hash or TOTP secret.
type ProfileOutput struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type HistoryEntryOutput struct {
	Time time.Time `json:"time"`
	IP   string    `json:"ip"`
}
