package gsheet

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/ukaji3/gsheet-go/pkg/gsheet/address"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/coalesce"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/models"
)

// RecordSheet is a Sheet laid out as records: the first row holds field
// names (the header) and the first column holds row labels (the legend).
//
// Header and legend are read when the sheet is opened or switched and are
// not refreshed if the remote sheet changes afterwards.
type RecordSheet struct {
	*Sheet

	header []string
	legend []string
	stage  map[string]any
}

// Target selects the cell a RecordSheet.Set writes to. Empty fields leave
// the cursor's column or row unchanged.
type Target struct {
	// Column is a header field name.
	Column string
	// Row is a legend label.
	Row string
	// Offset is added to the row found for Row.
	Offset int
}

// NewRecordSheet creates a RecordSheet and caches its header and legend.
func NewRecordSheet(ctx context.Context, svc RangeService, opts Options) (*RecordSheet, error) {
	r := &RecordSheet{
		Sheet: New(svc, opts),
		stage: make(map[string]any),
	}
	if err := r.load(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// SetSheet switches the active sheet and reloads header and legend. If the
// reload fails the previous sheet and its caches stay active.
func (r *RecordSheet) SetSheet(ctx context.Context, name string) error {
	prev := r.Name()
	r.Sheet.SetSheet(name)
	if err := r.load(ctx); err != nil {
		r.Sheet.SetSheet(prev)
		return err
	}
	return nil
}

func (r *RecordSheet) load(ctx context.Context) error {
	rows, err := r.ReadSheet(ctx)
	if err != nil {
		return err
	}

	r.header = nil
	if len(rows) > 0 {
		r.header = slices.Clone(rows[0])
	}

	r.legend = make([]string, len(rows))
	for i, row := range rows {
		if len(row) > 0 {
			r.legend[i] = row[0]
		}
	}

	r.log.WithField("sheet", r.Name()).Debugf("loaded %d header fields, %d legend rows", len(r.header), len(r.legend))
	return nil
}

// Header returns the cached header row.
func (r *RecordSheet) Header() []string { return slices.Clone(r.header) }

// Legend returns the cached first column, one entry per row, "" where a row
// has no label.
func (r *RecordSheet) Legend() []string { return slices.Clone(r.legend) }

// ColumnByHeader moves the cursor to the column whose header is name and
// returns its label.
func (r *RecordSheet) ColumnByHeader(name string) (string, error) {
	col, err := r.lookupColumn(name)
	if err != nil {
		return "", err
	}
	r.SetColumn(col)
	return col, nil
}

func (r *RecordSheet) lookupColumn(name string) (string, error) {
	idx := slices.Index(r.header, name)
	if idx < 0 {
		return "", fmt.Errorf("%w: %q", ErrHeaderNotFound, name)
	}
	return address.ColumnAt(idx)
}

// RowByLegend moves the cursor to the row labelled label, plus offset, and
// returns the row number.
func (r *RecordSheet) RowByLegend(label string, offset int) (int, error) {
	row, err := r.lookupRow(label, offset)
	if err != nil {
		return 0, err
	}
	r.SetRow(row)
	return row, nil
}

func (r *RecordSheet) lookupRow(label string, offset int) (int, error) {
	idx := slices.Index(r.legend, label)
	if idx < 0 {
		return 0, fmt.Errorf("%w: %q", ErrLegendNotFound, label)
	}
	return max(1, idx+1+offset), nil
}

// Set writes v immediately at the cell picked by at. Mappings are written as
// a column of their values in ascending key order. The cursor only moves once
// both lookups succeed.
func (r *RecordSheet) Set(ctx context.Context, v any, at Target) error {
	val, err := models.ValueOf(v)
	if err != nil {
		return err
	}

	pos := r.Position()
	if at.Column != "" {
		if pos.Column, err = r.lookupColumn(at.Column); err != nil {
			return err
		}
	}
	if at.Row != "" {
		if pos.Row, err = r.lookupRow(at.Row, at.Offset); err != nil {
			return err
		}
	}
	r.MoveTo(pos)
	return r.Write(ctx, val)
}

// Stage buffers v for the cell under the cursor until Commit. Staging the
// same cell twice keeps the last value.
func (r *RecordSheet) Stage(v any) error {
	key := r.Position().String()
	pos, err := address.Parse(key)
	if err != nil {
		return err
	}
	if _, err := pos.ColumnIndex(); err != nil {
		return err
	}

	val, err := models.ValueOf(v)
	if err != nil {
		return err
	}
	scalar, ok := val.(models.Scalar)
	if !ok {
		return fmt.Errorf("%w: %T at %s", ErrNotScalar, v, key)
	}

	r.stage[key] = scalar.V
	return nil
}

// StageAt moves the cursor to pos and stages v there.
func (r *RecordSheet) StageAt(pos string, v any) error {
	if err := r.SetPosition(pos); err != nil {
		return err
	}
	return r.Stage(v)
}

// Staged returns a copy of the pending edits keyed by A1 position.
func (r *RecordSheet) Staged() map[string]any {
	return maps.Clone(r.stage)
}

// Commit writes the pending edits, one range per run of consecutive rows in
// a column, then clears them. If a write fails the pending edits are kept.
func (r *RecordSheet) Commit(ctx context.Context) error {
	runs, err := coalesce.FindRanges(r.stage)
	if err != nil {
		return err
	}

	for _, run := range runs {
		r.MoveTo(run.Start)

		var v models.Value = models.Column(run.Values)
		if len(run.Values) == 1 {
			v = models.Scalar{V: run.Values[0]}
		}
		if err := r.Write(ctx, v); err != nil {
			return err
		}
	}

	r.log.WithField("sheet", r.Name()).Debugf("committed %d staged cells in %d ranges", len(r.stage), len(runs))
	r.stage = make(map[string]any)
	return nil
}
