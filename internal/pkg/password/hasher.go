// Package password hashes and checks user passwords with bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher wraps bcrypt at a fixed cost.
type Hasher struct {
	cost  int
	dummy []byte
}

// NewHasher returns a Hasher using cost, clamped to bcrypt's valid range.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	h := &Hasher{cost: cost}
	// Hashing a constant cannot fail for valid costs.
	h.dummy, _ = bcrypt.GenerateFromPassword([]byte("publishing-api:dummy"), cost)
	return h
}

// Cost reports the bcrypt work factor.
func (h *Hasher) Cost() int { return h.cost }

// Hash returns a salted bcrypt hash of plain.
func (h *Hasher) Hash(plain string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(out), nil
}

// Verify reports whether plain matches hashed.
func (h *Hasher) Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// Equalize performs one comparison against a fixed hash so that a lookup miss
// costs about the same as a wrong password.
func (h *Hasher) Equalize(plain string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plain))
}
