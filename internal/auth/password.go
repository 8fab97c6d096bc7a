package auth

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost keeps hashing work bounded so a single login cannot starve
// the process under load.
const BcryptCost = 12

// HashPassword generates a salted bcrypt hash of the given password.
// Two calls with the same input produce different hashes.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
// A malformed hash is a mismatch, not an error.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// RandomCredential returns the hash of a freshly generated random value.
// Accounts created through federated sign-in store this instead of a
// real password, so the password login path can never match them.
func RandomCredential() (string, error) {
	return HashPassword(uuid.NewString())
}
