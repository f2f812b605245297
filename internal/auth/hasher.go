package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrHashFormat signals a corrupt or non-bcrypt stored hash. A merely wrong
// password is a normal false result, never an error.
var ErrHashFormat = errors.New("malformed password hash")

// PasswordHasher defines the minimal hashing interface (abstract so we can
// swap to argon2 later).
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) (bool, error)
}

// BcryptHasher hashes with bcrypt. Each call salts randomly, so two hashes
// of the same password never compare equal.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify compares in constant time relative to the secret material.
func (b BcryptHasher) Verify(hash, pw string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrHashFormat
	}
}
