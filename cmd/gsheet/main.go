// Package main provides the CLI entry point for gsheet-go.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/gsheet-go/pkg/gsheet"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/models"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/remote"
)

var (
	spreadsheetID string
	sheetName     string
	configDir     string
	xlsxPath      string
	logLevel      string
	pretty        bool

	cols       int
	rows       int
	horizontal bool
	asJSON     bool
	column     string
	row        string
	offset     int
	key        string
)

func main() {
	loadEnv()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gsheet",
		Short: "Read and write Google Sheets ranges",
		Long: `gsheet reads and writes cells, rows, columns and blocks of a Google
spreadsheet (or a local xlsx workbook with --xlsx) using A1 addresses.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&spreadsheetID, "spreadsheet", "s", envOr(envSpreadsheet, ""), "Spreadsheet ID")
	pf.StringVar(&sheetName, "sheet", envOr(envSheet, gsheet.DefaultSheet), "Sheet name")
	pf.StringVar(&configDir, "config-dir", envOr(envConfigDir, gsheet.DefaultConfigDir), "Directory holding credentials.json and token.json")
	pf.StringVar(&xlsxPath, "xlsx", "", "Use a local xlsx workbook instead of Google Sheets")
	pf.StringVar(&logLevel, "log-level", envOr(envLogLevel, "warning"), "Log level: debug, info, warning, error")
	pf.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	readCmd := &cobra.Command{
		Use:   "read POSITION",
		Short: "Read a cell, or a block with --cols/--rows",
		Args:  cobra.ExactArgs(1),
		RunE:  runRead,
	}
	readCmd.Flags().IntVar(&cols, "cols", 1, "Number of columns to read")
	readCmd.Flags().IntVar(&rows, "rows", 1, "Number of rows to read")

	writeCmd := &cobra.Command{
		Use:   "write POSITION VALUE...",
		Short: "Write one value, or several down a column (across a row with --horizontal)",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runWrite,
	}
	writeCmd.Flags().BoolVar(&horizontal, "horizontal", false, "Write several values across a row")
	writeCmd.Flags().BoolVar(&asJSON, "json", false, "Parse a single VALUE as JSON (arrays become columns or grids)")

	setCmd := &cobra.Command{
		Use:   "set VALUE",
		Short: "Write a value at the cell picked by header and legend",
		Args:  cobra.ExactArgs(1),
		RunE:  runSet,
	}
	setCmd.Flags().StringVar(&column, "column", "", "Header field naming the column")
	setCmd.Flags().StringVar(&row, "row", "", "Legend label naming the row")
	setCmd.Flags().IntVar(&offset, "offset", 0, "Rows to add to the legend row")
	setCmd.Flags().BoolVar(&asJSON, "json", false, "Parse VALUE as JSON")

	batchCmd := &cobra.Command{
		Use:   "batch POSITION=VALUE...",
		Short: "Stage several cell writes and commit them as coalesced ranges",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runBatch,
	}

	recordsCmd := &cobra.Command{
		Use:   "records",
		Short: "Print the sheet as JSON records keyed by its header row",
		Args:  cobra.NoArgs,
		RunE:  runRecords,
	}
	recordsCmd.Flags().StringVar(&key, "key", "", "Index records by this field")

	exportCmd := &cobra.Command{
		Use:   "export OUTPUT.xlsx",
		Short: "Copy the sheet into a local xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}

	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Obtain or refresh the stored credential",
		Args:  cobra.NoArgs,
		RunE:  runAuth,
	}

	rootCmd.AddCommand(readCmd, writeCmd, setCmd, batchCmd, recordsCmd, exportCmd, authCmd)
	return rootCmd
}

// withSheet opens the selected backend, runs fn and saves local workbooks.
func withSheet(ctx context.Context, fn func(*gsheet.Sheet) error) error {
	opts, err := options()
	if err != nil {
		return err
	}
	b, err := openBackend(ctx, opts)
	if err != nil {
		return err
	}
	defer b.close()

	if err := fn(gsheet.New(b.svc, opts)); err != nil {
		return err
	}
	return b.save()
}

func withRecordSheet(ctx context.Context, fn func(*gsheet.RecordSheet) error) error {
	opts, err := options()
	if err != nil {
		return err
	}
	b, err := openBackend(ctx, opts)
	if err != nil {
		return err
	}
	defer b.close()

	rs, err := gsheet.NewRecordSheet(ctx, b.svc, opts)
	if err != nil {
		return err
	}
	if err := fn(rs); err != nil {
		return err
	}
	return b.save()
}

func runRead(cmd *cobra.Command, args []string) error {
	return withSheet(cmd.Context(), func(s *gsheet.Sheet) error {
		if err := s.SetPosition(args[0]); err != nil {
			return err
		}
		if cols == 1 && rows == 1 {
			v, err := s.Read(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		}
		block, err := s.ReadBlock(cmd.Context(), cols, rows)
		if err != nil {
			return err
		}
		return printJSON(cmd, block)
	})
}

func runWrite(cmd *cobra.Command, args []string) error {
	v, err := parseValues(args[1:])
	if err != nil {
		return err
	}
	return withSheet(cmd.Context(), func(s *gsheet.Sheet) error {
		if err := s.SetPosition(args[0]); err != nil {
			return err
		}
		return s.Write(cmd.Context(), v)
	})
}

func runSet(cmd *cobra.Command, args []string) error {
	var v any = args[0]
	if asJSON {
		if err := json.Unmarshal([]byte(args[0]), &v); err != nil {
			return fmt.Errorf("invalid JSON value: %w", err)
		}
	}
	return withRecordSheet(cmd.Context(), func(rs *gsheet.RecordSheet) error {
		return rs.Set(cmd.Context(), v, gsheet.Target{Column: column, Row: row, Offset: offset})
	})
}

func runBatch(cmd *cobra.Command, args []string) error {
	return withRecordSheet(cmd.Context(), func(rs *gsheet.RecordSheet) error {
		for _, arg := range args {
			pos, value, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("invalid edit %q: expected POSITION=VALUE", arg)
			}
			if err := rs.StageAt(pos, value); err != nil {
				return err
			}
		}
		return rs.Commit(cmd.Context())
	})
}

func runRecords(cmd *cobra.Command, args []string) error {
	return withSheet(cmd.Context(), func(s *gsheet.Sheet) error {
		if key != "" {
			records, err := s.RecordsByKey(cmd.Context(), key)
			if err != nil {
				return err
			}
			return printJSON(cmd, records)
		}
		records, err := s.Records(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, records)
	})
}

func runExport(cmd *cobra.Command, args []string) error {
	out := remote.NewWorkbook(args[0])
	defer out.Close()

	opts, err := options()
	if err != nil {
		return err
	}

	return withSheet(cmd.Context(), func(s *gsheet.Sheet) error {
		block, err := s.ReadSheet(cmd.Context())
		if err != nil {
			return err
		}
		grid := padGrid(block)
		if len(grid) == 0 {
			return fmt.Errorf("sheet %q is empty", s.Name())
		}

		dst := gsheet.New(out, opts)
		if err := dst.Write(cmd.Context(), grid); err != nil {
			return err
		}
		if err := out.Save(); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "exported %d rows to %s\n", len(grid), args[0])
		return nil
	})
}

func runAuth(cmd *cobra.Command, args []string) error {
	opts, err := options()
	if err != nil {
		return err
	}
	ts, err := gsheet.Authenticate(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if _, err := ts.Token(); err != nil {
		return gsheet.NewRemoteError("auth", "", err)
	}
	dir, err := opts.CredentialDir()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "credential stored in %s\n", dir)
	return nil
}

// parseValues turns command-line values into a write shape: one value is a
// scalar (or parsed JSON with --json), several are a column or a row.
func parseValues(args []string) (models.Value, error) {
	if len(args) == 1 {
		if !asJSON {
			return models.Scalar{V: args[0]}, nil
		}
		var v any
		if err := json.Unmarshal([]byte(args[0]), &v); err != nil {
			return nil, fmt.Errorf("invalid JSON value: %w", err)
		}
		return models.ValueOf(v)
	}

	vals := make([]any, len(args))
	for i, a := range args {
		vals[i] = a
	}
	if horizontal {
		return models.Row(vals), nil
	}
	return models.Column(vals), nil
}

// padGrid widens short rows with empty cells so the block is rectangular.
func padGrid(block [][]string) models.Grid {
	width := 0
	for _, r := range block {
		width = max(width, len(r))
	}
	if width == 0 {
		return nil
	}
	grid := make(models.Grid, len(block))
	for i, r := range block {
		grid[i] = make([]any, width)
		for j := range grid[i] {
			if j < len(r) {
				grid[i][j] = r[j]
			}
		}
	}
	return grid
}

func printJSON(cmd *cobra.Command, v any) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
