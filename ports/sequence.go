package ports

import (
	"context"

	"randmodel/domain/sample"
)

// SequenceSource provides the observed sequence under analysis.
// Implementations validate the length against the configured schedule
// before any statistics run, so a short or padded file fails fast.
type SequenceSource interface {
	Load(ctx context.Context) (*sample.Sample, error)
}
