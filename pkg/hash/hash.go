// Package hash wraps bcrypt for credential storage. Each Hash call salts
// independently, so equal inputs produce different stored values while
// Verify stays correct.
package hash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrMalformedHash reports a stored value that is not a bcrypt hash at all.
// Callers must not confuse it with a wrong password.
var ErrMalformedHash = errors.New("stored password hash is malformed")

type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plaintext string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether plaintext matches the stored hash. A mismatch is
// (false, nil); only a structurally invalid stored hash yields an error.
func (h *Hasher) Verify(plaintext, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, ErrMalformedHash
}
