// Package gsheet tracks a cursor inside a named sheet of a remote spreadsheet
// and reads or writes scalars, rows, columns and blocks relative to it.
package gsheet

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultSheet is the sheet used when Options.Sheet is empty.
	DefaultSheet = "Sheet1"
	// DefaultConfigDir holds credentials.json and the cached token.
	DefaultConfigDir = "~/.config/google_sheet"
	// DefaultSheetColumns is the width read by ReadSheet (A through CZ).
	DefaultSheetColumns = 104
	// DefaultSheetRows is the height read by ReadSheet.
	DefaultSheetRows = 500
)

// Options configures a Sheet.
type Options struct {
	// SpreadsheetID identifies the remote spreadsheet.
	SpreadsheetID string
	// Sheet is the initially active sheet name.
	Sheet string
	// ConfigDir is where credentials are read and tokens persisted.
	// A leading "~" is expanded to the home directory.
	ConfigDir string
	// SheetColumns and SheetRows bound the block read by ReadSheet.
	// Zero means the defaults.
	SheetColumns int
	SheetRows    int
	// Logger receives range-level logging. If nil, the logrus standard
	// logger is used.
	Logger *logrus.Logger
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Sheet:        DefaultSheet,
		ConfigDir:    DefaultConfigDir,
		SheetColumns: DefaultSheetColumns,
		SheetRows:    DefaultSheetRows,
	}
}

// SheetName returns the active sheet name to start with.
func (o Options) SheetName() string {
	if o.Sheet == "" {
		return DefaultSheet
	}
	return o.Sheet
}

// SheetExtent returns the columns and rows read by ReadSheet.
func (o Options) SheetExtent() (cols, rows int) {
	cols, rows = o.SheetColumns, o.SheetRows
	if cols <= 0 {
		cols = DefaultSheetColumns
	}
	if rows <= 0 {
		rows = DefaultSheetRows
	}
	return cols, rows
}

// CredentialDir returns ConfigDir with "~" expanded.
func (o Options) CredentialDir() (string, error) {
	dir := o.ConfigDir
	if dir == "" {
		dir = DefaultConfigDir
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir[1:], "/"))
	}
	return dir, nil
}

func (o Options) logger() *logrus.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logrus.StandardLogger()
}
