// Package address converts between A1-style cell addresses and column/row
// coordinates.
package address

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// MaxColumnIndex is the 0-based index of the last addressable column (XFD).
const MaxColumnIndex = excelize.MaxColumns - 1

// ColumnAt returns the column label for a 0-based index: 0 is "A", 25 is "Z",
// 26 is "AA". Labels follow bijective base-26 numbering.
func ColumnAt(index int) (string, error) {
	if index < 0 || index > MaxColumnIndex {
		return "", fmt.Errorf("%w: column index %d", ErrIndexOutOfRange, index)
	}
	name, err := excelize.ColumnNumberToName(index + 1)
	if err != nil {
		return "", fmt.Errorf("%w: column index %d", ErrIndexOutOfRange, index)
	}
	return name, nil
}

// ColumnIndex returns the 0-based index of a column label.
func ColumnIndex(label string) (int, error) {
	if label == "" || !isLetters(label) {
		return -1, fmt.Errorf("%w: %q", ErrUnknownColumn, label)
	}
	n, err := excelize.ColumnNameToNumber(label)
	if err != nil {
		return -1, fmt.Errorf("%w: %q", ErrUnknownColumn, label)
	}
	return n - 1, nil
}

func isLetters(s string) bool {
	for _, r := range s {
		if !('A' <= r && r <= 'Z') && !('a' <= r && r <= 'z') {
			return false
		}
	}
	return true
}
