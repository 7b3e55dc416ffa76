package ports

import (
	"randmodel/domain/distribution"
)

// UniformSource supplies the uniform stream consumed by synthesis. The
// contract is the generator's: one stream per process, seeded exactly
// once at entry, consumed sequentially, never reseeded mid-run. Two
// runs with the same seed and input replay identically.
type UniformSource = distribution.UniformSource
