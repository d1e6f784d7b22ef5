// Package security contains everything related to the security of user data
package security

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when a login targets an unknown email so
// that both failure cases burn the same work and take the same path
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type PasswordHasher struct {
	Cost int
}

func New() *PasswordHasher {
	return &PasswordHasher{
		Cost: 10,
	}
}

func (p *PasswordHasher) GenerateFromPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), p.Cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPasswd compares a password pw with the stored bcrypt hash e
func (p *PasswordHasher) VerifyPasswd(pw, e string) bool {
	return bcrypt.CompareHashAndPassword([]byte(e), []byte(pw)) == nil
}

// VerifyDummy runs a verification against a fixed hash that never matches.
// Used to keep the "no such user" branch in the same timing class as a
// wrong password
func (p *PasswordHasher) VerifyDummy(pw string) bool {
	bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(pw))
	return false
}
