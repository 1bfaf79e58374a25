package password

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Result is the outcome of a password check. A mismatch and a check that
// could not run at all are kept distinct so callers decide where the two
// collapse into a single "not valid" answer.
type Result int

const (
	NotVerified Result = iota
	Verified
	Fault
)

// Verify compares a plaintext secret against a stored bcrypt hash. It never
// returns an error: an empty secret or empty hash resolve to NotVerified, a
// hash bcrypt cannot parse (truncated, or minted by another scheme) resolves
// to Fault. The plaintext is never logged.
func Verify(plaintext, storedHash string) Result {
	if plaintext == "" || storedHash == "" {
		return NotVerified
	}
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext))
	switch {
	case err == nil:
		return Verified
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return NotVerified
	default:
		slog.Warn("Password check failed before comparison", slog.Any("error", err))
		return Fault
	}
}

// Hash derives a bcrypt hash from a plaintext secret. The bridge never
// writes hashes back to the user store; this exists for provisioning tools
// and test fixtures.
func Hash(plaintext string) (string, error) {
	const op = "Hash"
	if plaintext == "" {
		return "", fmt.Errorf("[%s] password must not be empty", op)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("[%s] Fail to hash password, err=%w", op, err)
	}
	return string(hash), nil
}
