package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Digest represents a cryptographic content digest
type Digest string

// NewDigest creates a new digest from data
func NewDigest(data []byte) Digest {
	sum := sha256.Sum256(data)
	return Digest(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (d Digest) String() string {
	return string(d)
}

// IsEmpty checks if the digest is empty
func (d Digest) IsEmpty() bool {
	return d == ""
}

// Equals checks if two digests are equal
func (d Digest) Equals(other Digest) bool {
	return d == other
}

// ComputeSequenceDigest digests an ordered sequence of canonical value
// strings. Values are joined with newlines so "1","23" and "12","3"
// cannot collide.
func ComputeSequenceDigest(values []string) Digest {
	var data strings.Builder
	for _, v := range values {
		data.WriteString(v)
		data.WriteByte('\n')
	}
	return NewDigest([]byte(data.String()))
}
