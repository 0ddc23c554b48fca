package sso

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	dErrors "prequal/pkg/domain-errors"
)

// HashSecret creates a bcrypt hash of a partner shared secret for storage in
// configuration.
func HashSecret(secret string) (string, error) {
	if secret == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "secret cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "secret is too long")
		}
		return "", fmt.Errorf("could not hash secret: %w", err)
	}
	return string(hashed), nil
}

// verifySecret checks a plaintext secret against a stored bcrypt hash.
func verifySecret(secret, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dErrors.New(dErrors.CodeUnauthorized, "invalid partner secret")
		}
		return fmt.Errorf("could not verify secret: %w", err)
	}
	return nil
}
