package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned by Verify when the plaintext does not match
// the stored hash. Callers must not distinguish it from "no such user" in
// anything they send to clients.
var ErrPasswordMismatch = errors.New("auth: invalid password")

// PasswordHasher provides bcrypt hashing and verification.
//
// The cost is injected so tests can run at bcrypt.MinCost instead of paying
// ~250ms per hash.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher with the given bcrypt cost.
// Pass bcrypt.DefaultCost outside of tests.
func NewPasswordHasher(cost int) *PasswordHasher {
	return &PasswordHasher{cost: cost}
}

// Hash hashes a plaintext password. The output embeds the salt and cost, so it
// can be stored as-is. Passwords over 72 bytes are rejected rather than letting
// bcrypt silently truncate them.
func (p *PasswordHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. Returns
// ErrPasswordMismatch on a wrong password; any other error means the hash
// itself is unusable.
func (p *PasswordHasher) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
