package gsheet

import (
	"context"

	"github.com/ukaji3/gsheet-go/pkg/gsheet/auth"
	"github.com/ukaji3/gsheet-go/pkg/gsheet/remote"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// Open authenticates with the credentials under opts.ConfigDir and returns a
// Sheet over the Google spreadsheet opts.SpreadsheetID.
func Open(ctx context.Context, opts Options) (*Sheet, error) {
	svc, err := Dial(ctx, opts)
	if err != nil {
		return nil, err
	}
	return New(svc, opts), nil
}

// OpenRecords is Open for a RecordSheet.
func OpenRecords(ctx context.Context, opts Options) (*RecordSheet, error) {
	svc, err := Dial(ctx, opts)
	if err != nil {
		return nil, err
	}
	return NewRecordSheet(ctx, svc, opts)
}

// Dial loads or refreshes the stored credential and connects to the
// spreadsheet API.
func Dial(ctx context.Context, opts Options) (*remote.SheetsClient, error) {
	ts, err := Authenticate(ctx, opts)
	if err != nil {
		return nil, err
	}

	c, err := remote.NewSheetsClient(ctx, opts.SpreadsheetID, option.WithTokenSource(ts))
	if err != nil {
		return nil, NewRemoteError("dial", "", err)
	}
	return c, nil
}

// Authenticate returns a token source for the credential stored under
// opts.ConfigDir, refreshing or re-acquiring it as needed.
func Authenticate(ctx context.Context, opts Options) (oauth2.TokenSource, error) {
	dir, err := opts.CredentialDir()
	if err != nil {
		return nil, NewRemoteError("auth", "", err)
	}

	ts, err := auth.Load(ctx, auth.Config{
		Dir:    dir,
		Scopes: []string{remote.Scope},
		Logger: opts.logger(),
	})
	if err != nil {
		return nil, NewRemoteError("auth", "", err)
	}
	return ts, nil
}
