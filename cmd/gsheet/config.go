package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/gsheet-go/pkg/gsheet"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/remote"
)

// Environment variables providing flag defaults.
const (
	envSpreadsheet = "GSHEET_SPREADSHEET_ID"
	envSheet       = "GSHEET_SHEET"
	envConfigDir   = "GSHEET_CONFIG_DIR"
	envLogLevel    = "GSHEET_LOG_LEVEL"
)

// loadEnv reads an optional .env file from the working directory. Variables
// already set in the environment win.
func loadEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func newLogger() (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %s", logLevel)
	}
	logger.SetLevel(level)
	return logger, nil
}

func options() (gsheet.Options, error) {
	logger, err := newLogger()
	if err != nil {
		return gsheet.Options{}, err
	}
	opts := gsheet.DefaultOptions()
	opts.SpreadsheetID = spreadsheetID
	opts.Sheet = sheetName
	opts.ConfigDir = configDir
	opts.Logger = logger
	return opts, nil
}

// backend is the range service selected by the flags. save persists local
// workbooks and is a no-op for the remote service.
type backend struct {
	svc   gsheet.RangeService
	save  func() error
	close func() error
}

func openBackend(ctx context.Context, opts gsheet.Options) (*backend, error) {
	if xlsxPath != "" {
		wb, err := remote.OpenWorkbook(xlsxPath)
		if err != nil {
			return nil, err
		}
		return &backend{svc: wb, save: wb.Save, close: wb.Close}, nil
	}

	if opts.SpreadsheetID == "" {
		return nil, fmt.Errorf("no spreadsheet: pass --spreadsheet or set %s", envSpreadsheet)
	}
	c, err := gsheet.Dial(ctx, opts)
	if err != nil {
		return nil, err
	}
	noop := func() error { return nil }
	return &backend{svc: c, save: noop, close: noop}, nil
}
