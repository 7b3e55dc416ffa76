// Package postgres archives run manifests so runs stay comparable
// across invocations. The archive is optional; the pipeline runs
// without it when no database is configured.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"randmodel/domain/core"
	"randmodel/domain/run"
	"randmodel/internal/errors"
	"randmodel/ports"
)

const runsSchema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	fingerprint TEXT NOT NULL,
	family      TEXT NOT NULL,
	manifest    JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Connect opens a database handle and verifies the connection
func Connect(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	return db, nil
}

// runArchive implements the RunArchive interface for PostgreSQL
type runArchive struct {
	db *sqlx.DB
}

// NewRunArchive ensures the runs table exists and returns the archive
func NewRunArchive(ctx context.Context, db *sqlx.DB) (ports.RunArchive, error) {
	if _, err := db.ExecContext(ctx, runsSchema); err != nil {
		return nil, errors.DatabaseError("failed to ensure runs schema", err)
	}
	return &runArchive{db: db}, nil
}

// SaveRun upserts one manifest keyed by run id
func (r *runArchive) SaveRun(ctx context.Context, manifest *run.Manifest) error {
	payload, err := json.Marshal(manifest)
	if err != nil {
		return errors.DatabaseError("failed to encode manifest", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, fingerprint, family, manifest, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (run_id) DO UPDATE
		SET fingerprint = EXCLUDED.fingerprint,
		    family = EXCLUDED.family,
		    manifest = EXCLUDED.manifest
	`, manifest.RunID.String(), manifest.Fingerprint.Fingerprint.String(),
		string(manifest.Family), payload, manifest.CreatedAt.Time())
	if err != nil {
		return errors.DatabaseError("failed to save run", err)
	}

	return nil
}

// GetRun retrieves one manifest by run id
func (r *runArchive) GetRun(ctx context.Context, id core.RunID) (*run.Manifest, error) {
	var payload []byte
	err := r.db.GetContext(ctx, &payload,
		`SELECT manifest FROM runs WHERE run_id = $1`, id.String())
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("run " + id.String())
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to load run", err)
	}

	return decodeManifest(payload)
}

// LatestRun retrieves the most recently archived manifest
func (r *runArchive) LatestRun(ctx context.Context) (*run.Manifest, error) {
	var payload []byte
	err := r.db.GetContext(ctx, &payload,
		`SELECT manifest FROM runs ORDER BY created_at DESC LIMIT 1`)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("run")
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to load latest run", err)
	}

	return decodeManifest(payload)
}

func decodeManifest(payload []byte) (*run.Manifest, error) {
	var manifest run.Manifest
	if err := json.Unmarshal(payload, &manifest); err != nil {
		return nil, errors.DatabaseError("failed to decode manifest", err)
	}
	return &manifest, nil
}
