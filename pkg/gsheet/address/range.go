package address

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Range is a rectangular block of cells within a named sheet. Start and End
// are both inclusive.
type Range struct {
	Sheet string
	Start Position
	End   Position
}

// Span returns the range of cols x rows cells anchored at start.
func Span(sheet string, start Position, cols, rows int) (Range, error) {
	if cols < 1 || rows < 1 {
		return Range{}, fmt.Errorf("%w: extent %dx%d", ErrIndexOutOfRange, cols, rows)
	}
	end, err := start.Right(cols - 1)
	if err != nil {
		return Range{}, err
	}
	return Range{Sheet: sheet, Start: start, End: end.Down(rows - 1)}, nil
}

// String returns the range expression, e.g. "Sheet1!A1:B3".
func (r Range) String() string {
	cells := r.Start.String() + ":" + r.End.String()
	if r.Sheet == "" {
		return cells
	}
	return QuoteSheet(r.Sheet) + "!" + cells
}

// Cells returns the start/end cell names without the sheet prefix.
func (r Range) Cells() string {
	return r.Start.String() + ":" + r.End.String()
}

// Dimensions returns the number of columns and rows covered by the range.
func (r Range) Dimensions() (cols, rows int, err error) {
	c1, r1, err := excelize.CellNameToCoordinates(r.Start.String())
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnknownColumn, err)
	}
	c2, r2, err := excelize.CellNameToCoordinates(r.End.String())
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnknownColumn, err)
	}
	return c2 - c1 + 1, r2 - r1 + 1, nil
}

// ParseRange parses a range expression. Accepted forms:
// 'Sheet Name'!$A$1:$D$10, Sheet1!A1:D10, A1:D10 and a single cell B2.
func ParseRange(s string) (Range, error) {
	var r Range
	rangeStr := strings.TrimSpace(s)

	// Split by ! to separate sheet name and cells
	if idx := strings.LastIndex(rangeStr, "!"); idx >= 0 {
		r.Sheet = unquoteSheet(rangeStr[:idx])
		rangeStr = rangeStr[idx+1:]
	}

	parts := strings.Split(rangeStr, ":")
	if len(parts) > 2 {
		return Range{}, fmt.Errorf("%w: %q", ErrMalformedAddress, s)
	}

	start, err := Parse(parts[0])
	if err != nil {
		return Range{}, err
	}
	r.Start, r.End = start, start
	if len(parts) == 2 {
		if r.End, err = Parse(parts[1]); err != nil {
			return Range{}, err
		}
	}
	return r, nil
}

// QuoteSheet quotes a sheet name for use in a range expression when it
// contains anything other than letters, digits and underscores.
func QuoteSheet(name string) string {
	plain := name != ""
	for _, r := range name {
		if !isLetters(string(r)) && !('0' <= r && r <= '9') && r != '_' {
			plain = false
			break
		}
	}
	if plain {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func unquoteSheet(name string) string {
	if len(name) >= 2 && strings.HasPrefix(name, "'") && strings.HasSuffix(name, "'") {
		return strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	return name
}
