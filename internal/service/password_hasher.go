package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"

	"proctor_backend/pkg/tracing"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input past 72 bytes; longer passwords are reduced to their
// SHA-256 hex digest first.
const bcryptMaxInput = 72

// timeholderPassword is hashed at start-up and compared against whenever a
// login names an unknown user, so both failure paths cost one bcrypt compare.
const timeholderPassword = "the quick brown fox jumps over the lazy proctor"

// PasswordHasher runs bcrypt off the request goroutine so a cancelled request
// stops waiting for it.
type PasswordHasher struct {
	mu         sync.RWMutex
	cost       int
	timeholder []byte
}

func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	h := &PasswordHasher{}
	if err := h.SetCost(cost); err != nil {
		return nil, err
	}
	return h, nil
}

// SetCost changes the work factor for new hashes and regenerates the
// timeholder at that cost.
func (h *PasswordHasher) SetCost(cost int) error {
	timeholder, err := bcrypt.GenerateFromPassword(prepare(timeholderPassword), cost)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.cost = cost
	h.timeholder = timeholder
	h.mu.Unlock()
	return nil
}

func (h *PasswordHasher) Cost() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cost
}

func prepare(password string) []byte {
	if len(password) <= bcryptMaxInput {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}

func (h *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "password.hash")
	defer span.End()

	cost := h.Cost()
	hash, err := offload(ctx, func() ([]byte, error) {
		return bcrypt.GenerateFromPassword(prepare(password), cost)
	})
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare reports whether password matches hash. A mismatch is not an error.
func (h *PasswordHasher) Compare(ctx context.Context, hash, password string) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "password.compare")
	defer span.End()
	return compare(ctx, []byte(hash), password)
}

// CompareTimeholder burns the same work as Compare; the result is meaningless.
func (h *PasswordHasher) CompareTimeholder(ctx context.Context, password string) error {
	ctx, span := tracing.StartSpan(ctx, "password.compare")
	defer span.End()

	h.mu.RLock()
	timeholder := h.timeholder
	h.mu.RUnlock()
	_, err := compare(ctx, timeholder, password)
	return err
}

func compare(ctx context.Context, hash []byte, password string) (bool, error) {
	_, err := offload(ctx, func() ([]byte, error) {
		return nil, bcrypt.CompareHashAndPassword(hash, prepare(password))
	})
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type hashResult struct {
	out []byte
	err error
}

func offload(ctx context.Context, fn func() ([]byte, error)) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	done := make(chan hashResult, 1)
	go func() {
		out, err := fn()
		done <- hashResult{out, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.out, r.err
	}
}
