// Package password encodes and verifies credentials with bcrypt.
package password

import "golang.org/x/crypto/bcrypt"

// BcryptHasher encodes raw passwords using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher builds a hasher; cost <= 0 falls back to the bcrypt default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Encode(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Matches(raw, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(raw)) == nil
}
