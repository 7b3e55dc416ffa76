package run

import (
	"fmt"

	"randmodel/domain/core"
)

// Fingerprint pins the determinism inputs of a run. The same source
// sequence, schedule, seed and lag bound must reproduce the same
// artifacts bit for bit.
type Fingerprint struct {
	SourceDigest core.Digest `json:"source_digest"`
	Schedule     []int       `json:"schedule"`
	Seed         int64       `json:"seed"`
	MaxLag       int         `json:"max_lag"`
	Fingerprint  core.Digest `json:"fingerprint"` // digest of all above
}

// NewFingerprint creates a fingerprint from determinism parameters
func NewFingerprint(sourceDigest core.Digest, schedule []int, seed int64, maxLag int) Fingerprint {
	return Fingerprint{
		SourceDigest: sourceDigest,
		Schedule:     schedule,
		Seed:         seed,
		MaxLag:       maxLag,
		Fingerprint:  computeFingerprint(sourceDigest, schedule, seed, maxLag),
	}
}

// computeFingerprint generates a deterministic digest from all determinism parameters
func computeFingerprint(sourceDigest core.Digest, schedule []int, seed int64, maxLag int) core.Digest {
	data := fmt.Sprintf("source:%s|schedule:%v|seed:%d|lag:%d", sourceDigest, schedule, seed, maxLag)
	return core.NewDigest([]byte(data))
}
