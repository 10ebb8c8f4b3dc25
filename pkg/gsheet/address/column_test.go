package address

import (
	"errors"
	"testing"
)

func TestColumnAt(t *testing.T) {
	tests := []struct {
		index    int
		expected string
	}{
		{0, "A"},
		{25, "Z"},
		{26, "AA"},
		{51, "AZ"},
		{77, "BZ"},
		{103, "CZ"},
		{104, "DA"},
		{701, "ZZ"},
		{702, "AAA"},
		{MaxColumnIndex, "XFD"},
	}

	for _, tt := range tests {
		result, err := ColumnAt(tt.index)
		if err != nil {
			t.Fatalf("ColumnAt(%d) failed: %v", tt.index, err)
		}
		if result != tt.expected {
			t.Errorf("ColumnAt(%d) = %q, expected %q", tt.index, result, tt.expected)
		}
	}
}

func TestColumnAtOutOfRange(t *testing.T) {
	for _, index := range []int{-1, MaxColumnIndex + 1} {
		if _, err := ColumnAt(index); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("ColumnAt(%d) error = %v, expected ErrIndexOutOfRange", index, err)
		}
	}
}

func TestColumnIndexUnknown(t *testing.T) {
	for _, label := range []string{"", "A1", "-", "XFE", "Ä"} {
		if _, err := ColumnIndex(label); !errors.Is(err, ErrUnknownColumn) {
			t.Errorf("ColumnIndex(%q) error = %v, expected ErrUnknownColumn", label, err)
		}
	}
}

func TestColumnRoundTrip(t *testing.T) {
	for i := 0; i <= 2000; i++ {
		label, err := ColumnAt(i)
		if err != nil {
			t.Fatalf("ColumnAt(%d) failed: %v", i, err)
		}
		back, err := ColumnIndex(label)
		if err != nil {
			t.Fatalf("ColumnIndex(%q) failed: %v", label, err)
		}
		if back != i {
			t.Errorf("ColumnIndex(ColumnAt(%d)) = %d", i, back)
		}
	}
}
