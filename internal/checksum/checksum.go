// Package checksum fingerprints raw uploaded bytes for duplicate detection.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the lowercase hex SHA-256 digest of data. It is pure and
// deterministic: identical byte streams always produce identical digests,
// which is what the duplicate check relies on.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
