// Package coalesce groups staged cell writes into contiguous vertical runs so
// they can be sent as a few range writes instead of one write per cell.
package coalesce

import (
	"slices"
	"strings"

	"github.com/ukaji3/gsheet-go/pkg/gsheet/address"
)

// Run is a block of staged values in consecutive rows of one column.
type Run struct {
	// Start is the topmost cell of the run.
	Start address.Position
	// Values are ordered by ascending row.
	Values []any
}

// End returns the bottom cell of the run.
func (r Run) End() address.Position {
	return r.Start.Down(len(r.Values) - 1)
}

// FindRanges splits staged edits, keyed by A1 position, into maximal runs of
// consecutive rows within each column. Every edit lands in exactly one run.
// Columns come out in ascending column order and runs top to bottom within a
// column. Horizontal neighbours are never merged.
func FindRanges(edits map[string]any) ([]Run, error) {
	cols := make(map[string][]int)
	values := make(map[address.Position]any, len(edits))
	for key, v := range edits {
		pos, err := address.Parse(key)
		if err != nil {
			return nil, err
		}
		cols[pos.Column] = append(cols[pos.Column], pos.Row)
		values[pos] = v
	}

	var runs []Run
	for _, col := range sortedColumns(cols) {
		rows := cols[col]
		slices.Sort(rows)
		rows = slices.Compact(rows)

		for _, group := range consecutiveGroups(rows) {
			run := Run{Start: address.At(col, group[0]), Values: make([]any, len(group))}
			for i, row := range group {
				run.Values[i] = values[address.At(col, row)]
			}
			runs = append(runs, run)
		}
	}
	return runs, nil
}

// Flatten turns runs back into edits keyed by A1 position.
func Flatten(runs []Run) map[string]any {
	edits := make(map[string]any)
	for _, r := range runs {
		for i, v := range r.Values {
			edits[r.Start.Down(i).String()] = v
		}
	}
	return edits
}

// consecutiveGroups splits sorted rows wherever neighbours differ by more
// than one.
func consecutiveGroups(rows []int) [][]int {
	var groups [][]int
	start := 0
	for i := 1; i <= len(rows); i++ {
		if i == len(rows) || rows[i] != rows[i-1]+1 {
			groups = append(groups, rows[start:i])
			start = i
		}
	}
	return groups
}

// sortedColumns orders column labels by column index. Labels without an
// index sort after the rest, alphabetically.
func sortedColumns(cols map[string][]int) []string {
	labels := make([]string, 0, len(cols))
	for c := range cols {
		labels = append(labels, c)
	}
	slices.SortFunc(labels, func(a, b string) int {
		ia, errA := address.ColumnIndex(a)
		ib, errB := address.ColumnIndex(b)
		switch {
		case errA != nil && errB != nil:
			return strings.Compare(a, b)
		case errA != nil:
			return 1
		case errB != nil:
			return -1
		}
		return ia - ib
	})
	return labels
}
