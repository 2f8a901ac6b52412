package security

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const DefaultHashCost = bcrypt.DefaultCost

var ErrInvalidPassword = errors.New("invalid password")

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

// BurnPasswordCheck spends the same work as CheckPassword against a throwaway
// hash, so an unknown account costs as much as a wrong password.
func BurnPasswordCheck(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), DefaultHashCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
