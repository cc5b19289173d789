// Package cryptox derives the per-user master key from a password and the
// verifier the server stores instead of the password. The verifier is also
// cached locally so the owner can be re-established offline.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/dmitrijs2005/studenthub/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of freshly generated registration salts.
const SaltSize = 32

func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

func DeriveMasterKey(password []byte, salt []byte) []byte {
	x := argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
	return x
}

// CheckPassword reports whether password and salt reproduce verifier. The
// derived key is wiped before returning.
func CheckPassword(password, salt, verifier []byte) bool {
	key := DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)
	return subtle.ConstantTimeCompare(MakeVerifier(key), verifier) == 1
}
