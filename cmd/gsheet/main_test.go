package main

import (
	"bytes"
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ukaji3/gsheet-go/pkg/gsheet/address"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/models"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/remote"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("gsheet %s failed: %v", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(out.String())
}

func TestWorkbookRoundTrip(t *testing.T) {
	dir := t.TempDir()
	book := filepath.Join(dir, "book.xlsx")

	execute(t, "--xlsx", book, "write", "A1", "Name", "Score", "--horizontal")
	execute(t, "--xlsx", book, "write", "A2", "ann")
	execute(t, "--xlsx", book, "batch", "B2=7", "A3=bob", "B3=9")

	if got := execute(t, "--xlsx", book, "read", "B2", "--rows", "2"); got != `[["7"],["9"]]` {
		t.Errorf("read B2 --rows 2 = %s", got)
	}

	records := execute(t, "--xlsx", book, "records")
	expected := `[{"Name":"ann","Score":"7"},{"Name":"bob","Score":"9"}]`
	if records != expected {
		t.Errorf("records = %s, expected %s", records, expected)
	}

	execute(t, "--xlsx", book, "set", "10", "--column", "Score", "--row", "bob")
	if got := execute(t, "--xlsx", book, "read", "B3"); got != "10" {
		t.Errorf("read B3 after set = %q, expected 10", got)
	}

	exported := filepath.Join(dir, "export.xlsx")
	execute(t, "--xlsx", book, "export", exported)

	wb, err := remote.OpenWorkbook(exported)
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}
	defer wb.Close()

	rng, err := address.ParseRange("Sheet1!A1:B3")
	if err != nil {
		t.Fatalf("ParseRange failed: %v", err)
	}
	block, err := wb.GetRange(context.Background(), rng)
	if err != nil {
		t.Fatalf("GetRange failed: %v", err)
	}
	want := [][]string{{"Name", "Score"}, {"ann", "7"}, {"bob", "10"}}
	if !reflect.DeepEqual(block, want) {
		t.Errorf("exported block = %v, expected %v", block, want)
	}
}

func TestParseValues(t *testing.T) {
	defer func() { asJSON, horizontal = false, false }()

	tests := []struct {
		args       []string
		json       bool
		horizontal bool
		expected   models.Value
	}{
		{[]string{"x"}, false, false, models.Scalar{V: "x"}},
		{[]string{"a", "b"}, false, false, models.Column{"a", "b"}},
		{[]string{"a", "b"}, false, true, models.Row{"a", "b"}},
		{[]string{`[[1,2],[3,4]]`}, true, false, models.Grid{{1.0, 2.0}, {3.0, 4.0}}},
		{[]string{`{"b":2,"a":1}`}, true, false, models.Column{1.0, 2.0}},
	}

	for _, tt := range tests {
		asJSON, horizontal = tt.json, tt.horizontal
		result, err := parseValues(tt.args)
		if err != nil {
			t.Fatalf("parseValues(%v) failed: %v", tt.args, err)
		}
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("parseValues(%v) = %#v, expected %#v", tt.args, result, tt.expected)
		}
	}
}

func TestPadGrid(t *testing.T) {
	grid := padGrid([][]string{{"a", "b", "c"}, {}, {"d"}})
	expected := models.Grid{{"a", "b", "c"}, {nil, nil, nil}, {"d", nil, nil}}
	if !reflect.DeepEqual(grid, expected) {
		t.Errorf("padGrid = %v, expected %v", grid, expected)
	}
	if padGrid(nil) != nil {
		t.Errorf("Expected nil grid for an empty block")
	}
}
