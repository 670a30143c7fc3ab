package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestSize is the byte length of a raw digest.
const DigestSize = sha256.Size

// HexLength is the character length of a rendered digest.
const HexLength = DigestSize * 2

// Digest hashes data with SHA-256 and renders the result as lowercase hex.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
