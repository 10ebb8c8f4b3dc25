package models

import "fmt"

// Format returns the display string written for a cell. nil becomes "".
func Format(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// FormatAll formats every element of a flat sequence.
func FormatAll(vals []any) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = Format(v)
	}
	return out
}

// FormatGrid formats every cell of a grid.
func FormatGrid(g Grid) [][]string {
	out := make([][]string, len(g))
	for i, row := range g {
		out[i] = FormatAll(row)
	}
	return out
}
