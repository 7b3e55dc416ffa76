package ports

import (
	"context"
)

// TableSink persists one named table of string cells. Implementations
// decide the medium; the pipeline writes the same rows to CSV files
// and to workbook sheets.
type TableSink interface {
	WriteTable(ctx context.Context, name string, rows [][]string) error
}

// PlotRenderer renders named plots into the run's artifact directory.
type PlotRenderer interface {
	// Line draws values against consecutive integer x positions
	// starting at startX. Sequences start at 0, correlograms at lag 1.
	Line(ctx context.Context, name string, values []float64, startX int) error

	// Histogram draws the frequency distribution of values.
	Histogram(ctx context.Context, name string, values []float64) error
}
