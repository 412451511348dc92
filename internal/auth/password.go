package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassphrase = errors.New("invalid passphrase")
	ErrWeakPassphrase    = errors.New("passphrase must be at least 8 characters")
)

// HashPassphrase returns the bcrypt hash to configure as the operator
// passphrase hash.
func HashPassphrase(passphrase string) (string, error) {
	if len(passphrase) < 8 {
		return "", ErrWeakPassphrase
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passphrase: %w", err)
	}
	return string(hashed), nil
}

// PassphraseAuthenticator checks the operator passphrase against a bcrypt hash.
type PassphraseAuthenticator struct {
	hash []byte
}

// NewPassphraseAuthenticator creates an authenticator for the given hash.
func NewPassphraseAuthenticator(hash string) *PassphraseAuthenticator {
	return &PassphraseAuthenticator{hash: []byte(hash)}
}

// Authenticate compares the passphrase with the configured hash.
func (a *PassphraseAuthenticator) Authenticate(_ context.Context, passphrase string) (string, error) {
	if len(a.hash) == 0 {
		return "", ErrInvalidPassphrase
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(passphrase)); err != nil {
		return "", ErrInvalidPassphrase
	}
	return Operator, nil
}
