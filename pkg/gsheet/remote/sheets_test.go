package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *SheetsClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewSheetsClient(context.Background(), "sheet-id",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return c
}

func TestSheetsClientGetRange(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v4/spreadsheets/sheet-id/values/Sheet1!A1:B3", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"range":          "Sheet1!A1:B3",
			"majorDimension": "ROWS",
			"values":         [][]any{{"Date", "Amount"}, {}, {"2024-01-02", 12.5}},
		})
	})

	block, err := c.GetRange(context.Background(), mustRange(t, "Sheet1!A1:B3"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Date", "Amount"}, {}, {"2024-01-02", "12.5"}}, block)
}

func TestSheetsClientSetRange(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v4/spreadsheets/sheet-id/values/Sheet1!B2:B3", r.URL.Path)
		assert.Equal(t, ValueInputOption, r.URL.Query().Get("valueInputOption"))

		var body struct {
			Range          string     `json:"range"`
			MajorDimension string     `json:"majorDimension"`
			Values         [][]string `json:"values"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Sheet1!B2:B3", body.Range)
		assert.Equal(t, "ROWS", body.MajorDimension)
		assert.Equal(t, [][]string{{"x"}, {"y"}}, body.Values)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"spreadsheetId": "sheet-id",
			"updatedRange":  "Sheet1!B2:B3",
			"updatedCells":  2,
		})
	})

	n, err := c.SetRange(context.Background(), mustRange(t, "Sheet1!B2:B3"), [][]string{{"x"}, {"y"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSheetsClientError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	})

	_, err := c.GetRange(context.Background(), mustRange(t, "Sheet1!A1:A1"))
	assert.Error(t, err)
}

func TestNewSheetsClientRequiresID(t *testing.T) {
	_, err := NewSheetsClient(context.Background(), "")
	assert.Error(t, err)
}
