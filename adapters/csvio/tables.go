package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"randmodel/internal/errors"
	"randmodel/ports"
)

// TableSink writes each table as <name>.csv inside a directory.
type TableSink struct {
	dir string
}

// NewTableSink creates a sink rooted at dir, creating it on first write
func NewTableSink(dir string) *TableSink {
	return &TableSink{dir: dir}
}

// WriteTable persists one table, replacing any previous file
func (s *TableSink) WriteTable(ctx context.Context, name string, rows [][]string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.IOError(fmt.Sprintf("failed to create table directory %s", s.dir), err)
	}

	path := filepath.Join(s.dir, name+".csv")
	file, err := os.Create(path)
	if err != nil {
		return errors.IOError(fmt.Sprintf("failed to create table file %s", path), err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return errors.IOError(fmt.Sprintf("failed to write table %s", name), err)
	}

	return nil
}

// Ensure TableSink implements the port
var _ ports.TableSink = (*TableSink)(nil)
