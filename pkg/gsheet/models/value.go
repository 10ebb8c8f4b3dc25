// Package models defines the values exchanged with a sheet.
package models

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"slices"
)

// ErrEmptyValue indicates a sequence or mapping with nothing to write.
var ErrEmptyValue = errors.New("empty value")

// ErrRaggedGrid indicates grid rows of different widths.
var ErrRaggedGrid = errors.New("grid rows differ in width")

// ErrUnorderedKeys indicates a mapping whose keys have no natural order.
var ErrUnorderedKeys = errors.New("mapping keys are not ordered")

// Value is the shape of a single range write. It is one of Scalar, Column,
// Row or Grid.
type Value interface {
	isValue()
}

// Scalar is a single cell.
type Scalar struct {
	V any
}

// Column is a flat sequence written downwards from the cursor.
type Column []any

// Row is a flat sequence written rightwards from the cursor.
type Row []any

// Grid is a rectangular block of rows anchored at the cursor.
type Grid [][]any

func (Scalar) isValue() {}
func (Column) isValue() {}
func (Row) isValue()    {}
func (Grid) isValue()   {}

// Width returns the number of columns in the grid.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// ValueOf picks the shape of v: a Value is returned as is, sequences become a
// Column, sequences of sequences a Grid and mappings a Column of their values
// ordered by key. Anything else is a Scalar.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case nil:
		return Scalar{}, nil
	case []byte:
		return Scalar{V: string(x)}, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		vals, err := mapValues(rv)
		if err != nil {
			return nil, err
		}
		if len(vals) == 0 {
			return nil, ErrEmptyValue
		}
		return Column(vals), nil
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return nil, ErrEmptyValue
		}
		if !isSequence(elem(rv.Index(0))) {
			return Column(items(rv)), nil
		}
		return gridOf(rv)
	}
	return Scalar{V: v}, nil
}

func gridOf(rv reflect.Value) (Grid, error) {
	grid := make(Grid, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		row := elem(rv.Index(i))
		if !isSequence(row) {
			return nil, fmt.Errorf("%w: row %d is not a sequence", ErrRaggedGrid, i)
		}
		grid = append(grid, items(row))
	}
	width := grid.Width()
	if width == 0 {
		return nil, ErrEmptyValue
	}
	for i, row := range grid {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRaggedGrid, i, len(row), width)
		}
	}
	return grid, nil
}

func isSequence(rv reflect.Value) bool {
	if !rv.IsValid() {
		return false
	}
	k := rv.Kind()
	if k != reflect.Slice && k != reflect.Array {
		return false
	}
	return rv.Type().Elem().Kind() != reflect.Uint8
}

// elem unwraps interface values such as the elements of []any.
func elem(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv
}

func items(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func mapValues(rv reflect.Value) ([]any, error) {
	cmpKeys, ok := keyComparator(rv.Type().Key().Kind())
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnorderedKeys, rv.Type().Key())
	}
	keys := rv.MapKeys()
	slices.SortFunc(keys, cmpKeys)
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = rv.MapIndex(k).Interface()
	}
	return out, nil
}

func keyComparator(kind reflect.Kind) (func(a, b reflect.Value) int, bool) {
	switch kind {
	case reflect.String:
		return func(a, b reflect.Value) int { return cmp.Compare(a.String(), b.String()) }, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Int(), b.Int()) }, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Uint(), b.Uint()) }, true
	case reflect.Float32, reflect.Float64:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Float(), b.Float()) }, true
	}
	return nil, false
}
