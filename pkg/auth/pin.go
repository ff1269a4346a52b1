package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPINMismatch is returned when a PIN does not match the stored hash.
var ErrPINMismatch = errors.New("auth: pin mismatch")

// HashPIN hashes an operator PIN for the OPERATOR_PIN_HASH setting.
func HashPIN(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPIN compares a PIN with its bcrypt hash. An empty hash never matches.
func VerifyPIN(hash, pin string) error {
	if hash == "" || pin == "" {
		return ErrPINMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPINMismatch
		}
		return err
	}
	return nil
}
