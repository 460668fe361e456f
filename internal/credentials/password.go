// Package credentials hashes passwords and issues the signed tokens carried in
// the x-auth-token header.
package credentials

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor used for stored passwords.
const HashCost = 10

// Hasher is a one-way password hash with a compare oracle.
type Hasher struct {
	cost int
}

// NewHasher returns a bcrypt Hasher. Costs below HashCost are raised to it.
func NewHasher(cost int) *Hasher {
	if cost < HashCost {
		cost = HashCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the salted bcrypt hash of password. Passwords of any accepted
// length are digested first, so bcrypt's 72 byte input limit never applies.
func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(digest(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether password matches hash.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), digest(password)) == nil
}

// digest maps password to a 44 byte base64 SHA-256 string.
func digest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
