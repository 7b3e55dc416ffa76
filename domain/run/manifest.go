package run

import (
	"randmodel/domain/core"
	"randmodel/domain/distribution"
	"randmodel/domain/sample"
)

// Manifest is the truth source for one analysis run: what the pipeline
// read, how it classified it and what it synthesized. It is written
// next to the run artifacts and optionally archived.
type Manifest struct {
	RunID        core.RunID  `json:"run_id"`
	SourcePath   string      `json:"source_path"`
	SourceDigest core.Digest `json:"source_digest"`
	Schedule     []int       `json:"schedule"`
	Seed         int64       `json:"seed"`
	MaxLag       int         `json:"max_lag"`
	Fingerprint  Fingerprint `json:"fingerprint"`

	// Outcome fields, recorded as the pipeline progresses. Decimal
	// parameters are stored as strings so exactness survives JSON.
	Family        distribution.Family `json:"family,omitempty"`
	ShapeK        int64               `json:"shape_k,omitempty"`
	RateA         string              `json:"rate_a,omitempty"`
	SourceMean    string              `json:"source_mean,omitempty"`
	SyntheticMean string              `json:"synthetic_mean,omitempty"`
	Correlation   string              `json:"correlation,omitempty"`

	CreatedAt core.Timestamp `json:"created_at"`
}

// NewManifest opens a manifest for a fresh run.
func NewManifest(sourcePath string, sourceDigest core.Digest, schedule sample.Schedule, seed int64, maxLag int) *Manifest {
	owned := append([]int(nil), schedule...)
	return &Manifest{
		RunID:        core.NewRunID(),
		SourcePath:   sourcePath,
		SourceDigest: sourceDigest,
		Schedule:     owned,
		Seed:         seed,
		MaxLag:       maxLag,
		Fingerprint:  NewFingerprint(sourceDigest, owned, seed, maxLag),
		CreatedAt:    core.Now(),
	}
}

// RecordClassification stores the family verdict.
func (m *Manifest) RecordClassification(family distribution.Family) {
	m.Family = family
}

// RecordFit stores the fitted Erlang parameters. The rate keeps its
// full decimal expansion.
func (m *Manifest) RecordFit(fit *distribution.ErlangFit) {
	m.ShapeK = fit.K
	m.RateA = fit.Rate.String()
}

// Validate checks if the manifest is complete
func (m *Manifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return core.NewValidationError("run_manifest", "run_id cannot be empty")
	}
	if m.SourcePath == "" {
		return core.NewValidationError("run_manifest", "source_path cannot be empty")
	}
	if m.SourceDigest.IsEmpty() {
		return core.NewValidationError("run_manifest", "source_digest cannot be empty")
	}
	if err := sample.Schedule(m.Schedule).Validate(); err != nil {
		return core.NewValidationError("run_manifest", err.Error())
	}
	if m.Family == "" {
		return core.NewValidationError("run_manifest", "family cannot be empty")
	}
	if m.Family == distribution.FamilyErlang {
		if m.ShapeK < 1 {
			return core.NewValidationError("run_manifest", "erlang run requires shape_k")
		}
		if m.RateA == "" {
			return core.NewValidationError("run_manifest", "erlang run requires rate_a")
		}
	}
	return nil
}
