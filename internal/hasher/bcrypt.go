package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mvillagra/gradebook-server/internal/model"
)

// Bcrypt implements model.PasswordHasher with a fixed work factor.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a hasher with the given cost. Zero or negative
// cost falls back to bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

var _ model.PasswordHasher = (*Bcrypt)(nil)

// Hash returns the salted bcrypt hash of the plaintext password.
func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare returns nil when the plaintext password matches the hash.
func (b *Bcrypt) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
