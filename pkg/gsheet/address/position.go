package address

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Position addresses one cell by column label and 1-based row.
type Position struct {
	// Column is the upper-case column label (e.g. "B").
	Column string
	// Row is the 1-based row number.
	Row int
}

// At builds a Position without validating the column label.
func At(column string, row int) Position {
	return Position{Column: strings.ToUpper(column), Row: row}
}

// Parse splits an address such as "B7" into column and row.
// Absolute markers ("$B$7") are accepted and dropped.
func Parse(s string) (Position, error) {
	col, row, err := excelize.SplitCellName(strings.TrimSpace(s))
	if err != nil || col == "" || !isLetters(col) {
		return Position{}, fmt.Errorf("%w: %q", ErrMalformedAddress, s)
	}
	return Position{Column: strings.ToUpper(col), Row: row}, nil
}

// String returns the A1 form of the position.
func (p Position) String() string {
	return p.Column + strconv.Itoa(p.Row)
}

// ColumnIndex returns the 0-based index of the position's column.
func (p Position) ColumnIndex() (int, error) {
	return ColumnIndex(p.Column)
}

// Down moves n rows down. Rows are not bounded above.
func (p Position) Down(n int) Position {
	p.Row += n
	return p
}

// Up moves n rows up, stopping at row 1.
func (p Position) Up(n int) Position {
	p.Row = max(1, p.Row-n)
	return p
}

// Left moves n columns left.
func (p Position) Left(n int) (Position, error) {
	return p.shift(-n)
}

// Right moves n columns right.
func (p Position) Right(n int) (Position, error) {
	return p.shift(n)
}

func (p Position) shift(n int) (Position, error) {
	idx, err := p.ColumnIndex()
	if err != nil {
		return p, err
	}
	col, err := ColumnAt(idx + n)
	if err != nil {
		return p, err
	}
	p.Column = col
	return p, nil
}
