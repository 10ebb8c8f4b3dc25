package gsheet

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/address"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/models"
)

// Sheet is a cursor over one named sheet of a spreadsheet. Every read or
// write issues exactly one call to the RangeService, anchored at the cursor.
//
// A Sheet is not safe for concurrent use.
type Sheet struct {
	svc   RangeService
	opts  Options
	sheet string
	pos   address.Position
	log   *logrus.Logger
}

// New creates a Sheet positioned at A1 of opts.Sheet.
func New(svc RangeService, opts Options) *Sheet {
	return &Sheet{
		svc:   svc,
		opts:  opts,
		sheet: opts.SheetName(),
		pos:   address.At("A", 1),
		log:   opts.logger(),
	}
}

// Name returns the active sheet name.
func (s *Sheet) Name() string { return s.sheet }

// SetSheet switches the active sheet. The cursor is kept.
func (s *Sheet) SetSheet(name string) { s.sheet = name }

// Position returns the cursor.
func (s *Sheet) Position() address.Position { return s.pos }

// SetPosition moves the cursor to an A1 address such as "B7".
func (s *Sheet) SetPosition(pos string) error {
	p, err := address.Parse(pos)
	if err != nil {
		return err
	}
	s.pos = p
	return nil
}

// MoveTo moves the cursor to p.
func (s *Sheet) MoveTo(p address.Position) { s.pos = p }

// SetColumn moves the cursor to a column label. The label is not checked
// here; later column arithmetic fails with ErrUnknownColumn.
func (s *Sheet) SetColumn(label string) { s.pos = address.At(label, s.pos.Row) }

// SetRow moves the cursor to row n. Rows below 1 become 1.
func (s *Sheet) SetRow(n int) { s.pos.Row = max(1, n) }

// ColumnIndex returns the 0-based index of the cursor's column.
func (s *Sheet) ColumnIndex() (int, error) { return s.pos.ColumnIndex() }

// MoveDown moves the cursor n rows down.
func (s *Sheet) MoveDown(n int) { s.pos = s.pos.Down(n) }

// MoveUp moves the cursor n rows up, stopping at row 1.
func (s *Sheet) MoveUp(n int) { s.pos = s.pos.Up(n) }

// MoveLeft moves the cursor n columns left. On error the cursor is kept.
func (s *Sheet) MoveLeft(n int) error {
	p, err := s.pos.Left(n)
	if err != nil {
		return err
	}
	s.pos = p
	return nil
}

// MoveRight moves the cursor n columns right. On error the cursor is kept.
func (s *Sheet) MoveRight(n int) error {
	p, err := s.pos.Right(n)
	if err != nil {
		return err
	}
	s.pos = p
	return nil
}

// Write stores v at the cursor: a Scalar in one cell, a Column downwards, a
// Row rightwards and a Grid as a block. The cursor does not move.
func (s *Sheet) Write(ctx context.Context, v models.Value) error {
	var (
		cols, rows int
		block      [][]string
	)

	switch x := v.(type) {
	case models.Scalar:
		cols, rows = 1, 1
		block = [][]string{{models.Format(x.V)}}
	case models.Column:
		cols, rows = 1, len(x)
		block = make([][]string, len(x))
		for i, cell := range x {
			block[i] = []string{models.Format(cell)}
		}
	case models.Row:
		cols, rows = len(x), 1
		block = [][]string{models.FormatAll(x)}
	case models.Grid:
		cols, rows = x.Width(), len(x)
		for i, row := range x {
			if len(row) != cols {
				return fmt.Errorf("%w: row %d has %d cells, expected %d", models.ErrRaggedGrid, i, len(row), cols)
			}
		}
		block = models.FormatGrid(x)
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}

	if cols == 0 || rows == 0 {
		return models.ErrEmptyValue
	}

	rng, err := address.Span(s.sheet, s.pos, cols, rows)
	if err != nil {
		return err
	}
	return s.setRange(ctx, rng, block)
}

// Read returns the value of the cell under the cursor.
func (s *Sheet) Read(ctx context.Context) (string, error) {
	block, err := s.ReadBlock(ctx, 1, 1)
	if err != nil {
		return "", err
	}
	if len(block) == 0 || len(block[0]) == 0 {
		return "", fmt.Errorf("%w: %s!%s", ErrEmptyCell, s.sheet, s.pos)
	}
	return block[0][0], nil
}

// ReadHorizontal reads n cells rightwards from the cursor.
func (s *Sheet) ReadHorizontal(ctx context.Context, n int) ([][]string, error) {
	return s.ReadBlock(ctx, n, 1)
}

// ReadVertical reads n cells downwards from the cursor.
func (s *Sheet) ReadVertical(ctx context.Context, n int) ([][]string, error) {
	return s.ReadBlock(ctx, 1, n)
}

// ReadBlock reads cols x rows cells anchored at the cursor. Rows are
// returned as the service sent them and may be short or missing.
func (s *Sheet) ReadBlock(ctx context.Context, cols, rows int) ([][]string, error) {
	rng, err := address.Span(s.sheet, s.pos, cols, rows)
	if err != nil {
		return nil, err
	}
	return s.getRange(ctx, rng)
}

// ReadSheet reads the whole configured extent of the active sheet from A1.
// The cursor does not move.
func (s *Sheet) ReadSheet(ctx context.Context) ([][]string, error) {
	cols, rows := s.opts.SheetExtent()
	rng, err := address.Span(s.sheet, address.At("A", 1), cols, rows)
	if err != nil {
		return nil, err
	}
	return s.getRange(ctx, rng)
}

// Records reads the active sheet as records keyed by its header row.
func (s *Sheet) Records(ctx context.Context) ([]models.Record, error) {
	rows, err := s.ReadSheet(ctx)
	if err != nil {
		return nil, err
	}
	return models.Records(rows), nil
}

// RecordsByKey reads the active sheet as records indexed by the key field.
func (s *Sheet) RecordsByKey(ctx context.Context, key string) (map[string]models.Record, error) {
	rows, err := s.ReadSheet(ctx)
	if err != nil {
		return nil, err
	}
	return models.RecordsByKey(rows, key), nil
}

func (s *Sheet) getRange(ctx context.Context, rng address.Range) ([][]string, error) {
	s.log.WithField("range", rng.String()).Debug("reading range")
	block, err := s.svc.GetRange(ctx, rng)
	if err != nil {
		return nil, NewRemoteError("get", rng.String(), err)
	}
	return block, nil
}

func (s *Sheet) setRange(ctx context.Context, rng address.Range, block [][]string) error {
	s.log.WithField("range", rng.String()).Debug("writing range")
	n, err := s.svc.SetRange(ctx, rng, block)
	if err != nil {
		return NewRemoteError("set", rng.String(), err)
	}
	s.log.WithFields(logrus.Fields{
		"range": rng.String(),
		"cells": n,
	}).Info("cells updated")
	return nil
}
