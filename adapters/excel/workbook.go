// Package excel persists table artifacts as sheets in a single
// workbook, one sheet per table.
package excel

import (
	"context"
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"

	"randmodel/internal/errors"
	"randmodel/ports"
)

const defaultSheet = "Sheet1"

// Workbook collects tables as sheets and saves them in one file.
// Cells are written as text so full decimal expansions survive the
// round trip through the workbook.
type Workbook struct {
	path string
	file *excelize.File

	mu     sync.Mutex
	sheets int
}

// NewWorkbook creates an empty workbook that will be saved at path
func NewWorkbook(path string) *Workbook {
	return &Workbook{path: path, file: excelize.NewFile()}
}

// WriteTable adds one table as a named sheet. Safe for concurrent use.
func (w *Workbook) WriteTable(ctx context.Context, name string, rows [][]string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	index, err := w.file.NewSheet(name)
	if err != nil {
		return errors.IOError(fmt.Sprintf("failed to create sheet %s", name), err)
	}

	for r, row := range rows {
		for c, cell := range row {
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return errors.IOError(fmt.Sprintf("invalid cell position %d,%d", c+1, r+1), err)
			}
			if err := w.file.SetCellValue(name, axis, cell); err != nil {
				return errors.IOError(fmt.Sprintf("failed to write cell %s on sheet %s", axis, name), err)
			}
		}
	}

	if w.sheets == 0 {
		w.file.SetActiveSheet(index)
	}
	w.sheets++

	return nil
}

// Save writes the workbook to disk, dropping the unused default sheet
func (w *Workbook) Save() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.sheets > 0 {
		if err := w.file.DeleteSheet(defaultSheet); err != nil {
			return errors.IOError("failed to drop default sheet", err)
		}
	}
	if err := w.file.SaveAs(w.path); err != nil {
		return errors.IOError(fmt.Sprintf("failed to save workbook %s", w.path), err)
	}

	return nil
}

// Close releases the underlying file resources
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Ensure Workbook implements the port
var _ ports.TableSink = (*Workbook)(nil)
