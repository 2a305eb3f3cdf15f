// Package credential is the pre-commit stage that turns plaintext secrets
// into bcrypt hashes before they reach the store.
//
// The stores call HashUser/HashClub only when a password is being set or
// changed in the current write; an update that does not touch the password
// leaves the stored hash untouched. A failed or timed-out hash aborts the
// write — there is no fallback that would let plaintext through.
package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/clubhub/internal/app/system/limits"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrHashTimeout is returned when hashing exceeds its wall-clock budget.
	// The caller must abort the write.
	ErrHashTimeout = errors.New("password hashing exceeded its time budget")

	// ErrEmptyPassword is returned for an empty plaintext.
	ErrEmptyPassword = errors.New("password must not be empty")
)

// HashUser hashes a user password with the configured user cost factor.
func HashUser(ctx context.Context, plaintext string) (string, error) {
	return hash(ctx, plaintext, limits.UserHashCost())
}

// HashClub hashes a club service password with the configured club cost factor.
func HashClub(ctx context.Context, plaintext string) (string, error) {
	return hash(ctx, plaintext, limits.ClubHashCost())
}

// hash runs bcrypt under the configured wall-clock budget. bcrypt itself is
// not context-aware, so the work runs in a goroutine and the caller abandons
// it on timeout; the buffered channel lets the goroutine finish and exit.
func hash(ctx context.Context, plaintext string, cost int) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}

	ctx, cancel := context.WithTimeout(ctx, limits.HashBudget())
	defer cancel()

	type outcome struct {
		hash []byte
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		h, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
		done <- outcome{hash: h, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w (%v)", ErrHashTimeout, ctx.Err())
	case out := <-done:
		if out.err != nil {
			return "", fmt.Errorf("hash password: %w", out.err)
		}
		return string(out.hash), nil
	}
}

// Verify reports whether plaintext matches the stored bcrypt hash.
func Verify(storedHash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}
