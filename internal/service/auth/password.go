package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier checks a login password against a stored user hash.
type PasswordVerifier interface {
	// Compare returns ErrInvalidCredentials when password does not match
	// hashedPassword. Any other error means the stored hash is unusable.
	Compare(hashedPassword, password string) error
}

// BcryptVerifier checks passwords hashed by the user store.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidCredentials
	default:
		return fmt.Errorf("stored password hash: %w", err)
	}
}
