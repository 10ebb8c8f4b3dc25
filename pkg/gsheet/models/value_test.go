package models

import (
	"errors"
	"reflect"
	"testing"
)

func TestValueOf(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected Value
	}{
		{"string", "hello", Scalar{V: "hello"}},
		{"int", 42, Scalar{V: 42}},
		{"nil", nil, Scalar{}},
		{"bytes", []byte("raw"), Scalar{V: "raw"}},
		{"value passthrough", Row{1, 2}, Row{1, 2}},
		{"flat any", []any{"x", 1}, Column{"x", 1}},
		{"flat typed", []float64{1.5, 2}, Column{1.5, 2.0}},
		{"nested", [][]string{{"a", "b"}, {"c", "d"}}, Grid{{"a", "b"}, {"c", "d"}}},
		{"nested any", []any{[]any{1, 2}, []int{3, 4}}, Grid{{1, 2}, {3, 4}}},
		{"string map", map[string]int{"b": 2, "a": 1, "c": 3}, Column{1, 2, 3}},
		{"int map", map[int]string{10: "ten", 2: "two"}, Column{"two", "ten"}},
	}

	for _, tt := range tests {
		result, err := ValueOf(tt.input)
		if err != nil {
			t.Fatalf("%s: ValueOf failed: %v", tt.name, err)
		}
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("%s: ValueOf(%v) = %#v, expected %#v", tt.name, tt.input, result, tt.expected)
		}
	}
}

func TestValueOfErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected error
	}{
		{"empty slice", []string{}, ErrEmptyValue},
		{"empty map", map[string]any{}, ErrEmptyValue},
		{"empty rows", [][]any{{}}, ErrEmptyValue},
		{"ragged", [][]int{{1, 2}, {3}}, ErrRaggedGrid},
		{"mixed rows", []any{[]int{1}, 2}, ErrRaggedGrid},
		{"unordered keys", map[bool]int{true: 1}, ErrUnorderedKeys},
	}

	for _, tt := range tests {
		if _, err := ValueOf(tt.input); !errors.Is(err, tt.expected) {
			t.Errorf("%s: ValueOf error = %v, expected %v", tt.name, err, tt.expected)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input    any
		expected string
	}{
		{"text", "text"},
		{123, "123"},
		{-4.5, "-4.5"},
		{true, "true"},
		{nil, ""},
	}

	for _, tt := range tests {
		if result := Format(tt.input); result != tt.expected {
			t.Errorf("Format(%v) = %q, expected %q", tt.input, result, tt.expected)
		}
	}

	grid := FormatGrid(Grid{{1, "a"}, {nil, 2.5}})
	expected := [][]string{{"1", "a"}, {"", "2.5"}}
	if !reflect.DeepEqual(grid, expected) {
		t.Errorf("FormatGrid = %v, expected %v", grid, expected)
	}
}
