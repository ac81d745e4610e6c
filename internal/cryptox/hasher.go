// Package cryptox hashes and checks user secrets with bcrypt.
//
// bcrypt embeds a fresh random salt and the cost factor in every hash, so a
// stored hash is all that is needed to verify a secret later. Comparison is
// constant-time.
package cryptox

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MaxSecretLen is the longest secret bcrypt accepts.
const MaxSecretLen = 72

var ErrSecretTooLong = errors.New("secret longer than 72 bytes")

// Hasher produces new bcrypt hashes at a fixed cost and checks hashes of
// any cost.
type Hasher struct {
	cost int

	mu    sync.Mutex
	decoy []byte
}

// NewHasher returns a Hasher for cost, which must be within
// [bcrypt.MinCost, bcrypt.MaxCost]. It precomputes a decoy hash of the same
// cost used by CompareDecoy.
func NewHasher(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	decoy, err := newDecoy(cost)
	if err != nil {
		return nil, err
	}
	return &Hasher{cost: cost, decoy: decoy}, nil
}

func newDecoy(cost int) ([]byte, error) {
	filler := make([]byte, 32)
	if _, err := rand.Read(filler); err != nil {
		return nil, err
	}
	decoy, err := bcrypt.GenerateFromPassword(filler, cost)
	if err != nil {
		return nil, fmt.Errorf("decoy hash: %w", err)
	}
	return decoy, nil
}

// Hash returns the bcrypt hash of secret.
func (h *Hasher) Hash(secret []byte) ([]byte, error) {
	if len(secret) > MaxSecretLen {
		return nil, ErrSecretTooLong
	}
	return bcrypt.GenerateFromPassword(secret, h.cost)
}

// Compare reports whether secret matches hash. The decoy follows the cost
// of the last stored hash compared, so hashes written under an earlier cost
// setting do not stand out from the unknown-account path.
func (h *Hasher) Compare(hash, secret []byte) bool {
	ok := bcrypt.CompareHashAndPassword(hash, secret) == nil
	if cost, err := bcrypt.Cost(hash); err == nil {
		h.followCost(cost)
	}
	return ok
}

func (h *Hasher) followCost(cost int) {
	h.mu.Lock()
	current, err := bcrypt.Cost(h.decoy)
	h.mu.Unlock()
	if err == nil && current == cost {
		return
	}

	decoy, err := newDecoy(cost)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.decoy = decoy
	h.mu.Unlock()
}

// CompareDecoy spends the same work as Compare against a hash no secret
// matches. Call it when the account does not exist so both paths take
// comparable time. It always returns false.
func (h *Hasher) CompareDecoy(secret []byte) bool {
	h.mu.Lock()
	decoy := h.decoy
	h.mu.Unlock()

	_ = bcrypt.CompareHashAndPassword(decoy, secret)
	return false
}
