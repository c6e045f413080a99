package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCheck is the outcome of comparing a stored credential with a
// candidate password.
type PasswordCheck int

const (
	PasswordMismatch PasswordCheck = iota
	PasswordOK
	// PasswordNeedsRehash means the candidate matched a legacy stored form
	// (plaintext or unsalted SHA-256 hex). The caller must replace it with a
	// bcrypt hash right away.
	PasswordNeedsRehash
)

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func isBcrypt(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}

// VerifyPassword checks plain against stored. Legacy forms are only
// accepted when allowLegacy is set.
func VerifyPassword(stored, plain string, allowLegacy bool) PasswordCheck {
	if stored == "" || plain == "" {
		return PasswordMismatch
	}
	if isBcrypt(stored) {
		if CheckPassword(stored, plain) {
			return PasswordOK
		}
		return PasswordMismatch
	}
	if !allowLegacy {
		return PasswordMismatch
	}

	sum := sha256.Sum256([]byte(plain))
	digest := hex.EncodeToString(sum[:])
	if subtle.ConstantTimeCompare([]byte(strings.ToLower(stored)), []byte(digest)) == 1 {
		return PasswordNeedsRehash
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1 {
		return PasswordNeedsRehash
	}
	return PasswordMismatch
}
