// Package uploadid derives the short tags used to correlate concurrent upload
// log lines with their source file.
package uploadid

import (
	"crypto/sha1"
	"encoding/hex"
)

// Length is the number of hex characters in a derived identifier.
const Length = 6

// Derive returns the first six lowercase hex characters of the SHA-1 digest of
// path. Identifiers are display aids; distinct paths may collide.
func Derive(path string) string {
	sum := sha1.Sum([]byte(path))
	return hex.EncodeToString(sum[:])[:Length]
}
