package remote

import (
	"context"
	"math"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/address"
	"github.com/xuri/excelize/v2"
)

// Workbook serves ranges from a local xlsx file. It mirrors the Sheets API:
// reads drop trailing empty cells and rows, writes parse numeric strings.
type Workbook struct {
	f    *excelize.File
	path string
}

// NewWorkbook creates an empty in-memory workbook that saves to path.
func NewWorkbook(path string) *Workbook {
	return &Workbook{f: excelize.NewFile(), path: path}
}

// OpenWorkbook opens the xlsx file at path, or starts an empty workbook if
// the file does not exist yet.
func OpenWorkbook(path string) (*Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewWorkbook(path), nil
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening workbook %s", path)
	}
	return &Workbook{f: f, path: path}, nil
}

// File exposes the underlying excelize file.
func (w *Workbook) File() *excelize.File { return w.f }

// Save writes the workbook to its path.
func (w *Workbook) Save() error {
	return errors.Wrapf(w.f.SaveAs(w.path), "saving workbook %s", w.path)
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// GetRange returns the values in rng.
func (w *Workbook) GetRange(_ context.Context, rng address.Range) ([][]string, error) {
	if idx, err := w.f.GetSheetIndex(rng.Sheet); err != nil || idx < 0 {
		return nil, errors.Errorf("sheet %q does not exist", rng.Sheet)
	}
	c1, r1, c2, r2, err := coordinates(rng)
	if err != nil {
		return nil, err
	}

	rows, err := w.f.GetRows(rng.Sheet)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var block [][]string
	for rowIdx := r1 - 1; rowIdx < r2 && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		var line []string
		for colIdx := c1 - 1; colIdx < c2 && colIdx < len(row); colIdx++ {
			line = append(line, row[colIdx])
		}
		block = append(block, trimCells(line))
	}
	return trimRows(block), nil
}

// SetRange writes values to rng, creating the sheet if needed.
func (w *Workbook) SetRange(_ context.Context, rng address.Range, values [][]string) (int, error) {
	c1, r1, c2, r2, err := coordinates(rng)
	if err != nil {
		return 0, err
	}
	if len(values) > r2-r1+1 {
		return 0, errors.Errorf("%d rows do not fit in %s", len(values), rng)
	}
	if idx, err := w.f.GetSheetIndex(rng.Sheet); err != nil || idx < 0 {
		if _, err := w.f.NewSheet(rng.Sheet); err != nil {
			return 0, errors.WithStack(err)
		}
	}

	updated := 0
	for i, row := range values {
		if len(row) > c2-c1+1 {
			return updated, errors.Errorf("%d cells do not fit in a row of %s", len(row), rng)
		}
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(c1+j, r1+i)
			if err != nil {
				return updated, errors.WithStack(err)
			}
			if err := w.f.SetCellValue(rng.Sheet, cell, parseValue(v)); err != nil {
				return updated, errors.WithStack(err)
			}
			updated++
		}
	}
	return updated, nil
}

func coordinates(rng address.Range) (c1, r1, c2, r2 int, err error) {
	if c1, r1, err = excelize.CellNameToCoordinates(rng.Start.String()); err != nil {
		return 0, 0, 0, 0, errors.WithStack(err)
	}
	if c2, r2, err = excelize.CellNameToCoordinates(rng.End.String()); err != nil {
		return 0, 0, 0, 0, errors.WithStack(err)
	}
	return c1, r1, c2, r2, nil
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}

func trimCells(line []string) []string {
	end := len(line)
	for end > 0 && line[end-1] == "" {
		end--
	}
	return line[:end]
}

func trimRows(block [][]string) [][]string {
	end := len(block)
	for end > 0 && len(block[end-1]) == 0 {
		end--
	}
	return block[:end]
}
