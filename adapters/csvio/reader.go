// Package csvio reads observed sequences from CSV files and writes
// table artifacts back out as CSV.
package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"randmodel/domain/core"
	"randmodel/domain/sample"
	"randmodel/internal/errors"
	"randmodel/ports"
)

// SequenceReader loads a numeric sequence from a CSV file. Cells may
// be laid out one per row or many per row; both flatten into a single
// sequence in reading order. The reader rejects files whose value
// count differs from the configured expectation.
type SequenceReader struct {
	path     string
	expected int
}

// NewSequenceReader creates a reader that requires exactly expected values
func NewSequenceReader(path string, expected int) *SequenceReader {
	return &SequenceReader{path: path, expected: expected}
}

// Load reads, parses and validates the sequence
func (r *SequenceReader) Load(ctx context.Context) (*sample.Sample, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to open sequence file %s", r.path), err)
	}
	defer file.Close()

	values, err := parseCells(file)
	if err != nil {
		return nil, err
	}
	if len(values) != r.expected {
		return nil, core.NewLengthError(r.expected, len(values))
	}

	return sample.New(values)
}

// parseCells flattens every non-empty CSV cell into a decimal value
func parseCells(src io.Reader) ([]decimal.Decimal, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var values []decimal.Decimal
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.IOError("failed to read CSV record", err)
		}
		row++
		for col, cell := range record {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			value, err := decimal.NewFromString(cell)
			if err != nil {
				return nil, errors.InvalidInput(fmt.Sprintf("row %d column %d: %q is not numeric", row, col+1, cell))
			}
			values = append(values, value)
		}
	}

	return values, nil
}

// Ensure SequenceReader implements SequenceSource
var _ ports.SequenceSource = (*SequenceReader)(nil)
