package mocks

import "github.com/adboard/adboard-api/internal/service/auth"

// MockPasswordVerifier implements auth.PasswordVerifier. Without CompareFn
// every comparison fails with auth.ErrInvalidCredentials.
type MockPasswordVerifier struct {
	CompareFn func(hashedPassword, password string) error

	// Calls counts Compare invocations
	Calls int
}

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.Calls++
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	return auth.ErrInvalidCredentials
}
