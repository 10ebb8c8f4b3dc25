// Package remote implements range services over Google Sheets and local
// xlsx workbooks.
package remote

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/address"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scope grants read and write access to spreadsheets.
const Scope = sheets.SpreadsheetsScope

// ValueInputOption makes the service parse written strings as if typed in
// by a user, so "12" is stored as a number.
const ValueInputOption = "USER_ENTERED"

// SheetsClient reads and writes value ranges of one Google spreadsheet.
type SheetsClient struct {
	srv           *sheets.Service
	spreadsheetID string
}

// NewSheetsClient creates a client for spreadsheetID. Authentication is
// supplied through opts, e.g. option.WithTokenSource.
func NewSheetsClient(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*SheetsClient, error) {
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating sheets service")
	}
	return &SheetsClient{srv: srv, spreadsheetID: spreadsheetID}, nil
}

// SpreadsheetID returns the spreadsheet this client talks to.
func (c *SheetsClient) SpreadsheetID() string { return c.spreadsheetID }

// GetRange returns the formatted values stored in rng.
func (c *SheetsClient) GetRange(ctx context.Context, rng address.Range) ([][]string, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, rng.String()).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return toStrings(resp.Values), nil
}

// SetRange writes values to rng and returns the number of updated cells.
func (c *SheetsClient) SetRange(ctx context.Context, rng address.Range, values [][]string) (int, error) {
	vr := &sheets.ValueRange{
		Range:          rng.String(),
		MajorDimension: "ROWS",
		Values:         toInterfaces(values),
	}
	resp, err := c.srv.Spreadsheets.Values.Update(c.spreadsheetID, rng.String(), vr).
		ValueInputOption(ValueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return int(resp.UpdatedCells), nil
}

func toStrings(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		out[i] = make([]string, len(row))
		for j, v := range row {
			if s, ok := v.(string); ok {
				out[i][j] = s
			} else if v != nil {
				out[i][j] = fmt.Sprint(v)
			}
		}
	}
	return out
}

func toInterfaces(values [][]string) [][]interface{} {
	out := make([][]interface{}, len(values))
	for i, row := range values {
		out[i] = make([]interface{}, len(row))
		for j, v := range row {
			out[i][j] = v
		}
	}
	return out
}
