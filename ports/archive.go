package ports

import (
	"context"

	"randmodel/domain/core"
	"randmodel/domain/run"
)

// RunArchive persists run manifests for later comparison across runs.
// Archiving is optional: a run without an archive still writes every
// local artifact.
type RunArchive interface {
	SaveRun(ctx context.Context, manifest *run.Manifest) error
	GetRun(ctx context.Context, id core.RunID) (*run.Manifest, error)
	LatestRun(ctx context.Context) (*run.Manifest, error)
}
