package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the lower-case hex SHA-256 of password.
// It is unsalted and single-round; stored digests are compared verbatim.
func Digest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
