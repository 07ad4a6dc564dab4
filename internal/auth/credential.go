package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/raihanmd/employee-management/internal"
)

// CredentialVerifier compares a submitted password against a stored
// credential. Stored values are normally bcrypt hashes, but pre-seeded
// bootstrap admins may still carry plaintext passwords; callers opt into that
// legacy equality path explicitly and every hit is logged.
type CredentialVerifier struct {
	logger *slog.Logger
}

func NewCredentialVerifier(logger *slog.Logger) *CredentialVerifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &CredentialVerifier{logger: logger}
}

// Verify returns nil on a match, internal.ErrWrongCredentials on a mismatch,
// and a wrapped error when the hashing primitive itself fails. The last case
// is kept distinct so callers can tell "wrong password" from "broken hash".
func (v *CredentialVerifier) Verify(submitted, stored string, allowPlaintext bool) error {
	if allowPlaintext && subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) == 1 {
		v.logger.Warn("credential verified via legacy plaintext path; stored credential should be re-hashed")
		return nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return internal.ErrWrongCredentials
	}
	return fmt.Errorf("credential verifier: %w", err)
}

// HashPassword creates a bcrypt hash of the password.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
