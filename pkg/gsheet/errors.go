package gsheet

import (
	"errors"
	"fmt"

	"github.com/ukaji3/gsheet-go/pkg/gsheet/address"
)

// Address errors, re-exported so callers only need this package.
var (
	ErrMalformedAddress = address.ErrMalformedAddress
	ErrUnknownColumn    = address.ErrUnknownColumn
	ErrIndexOutOfRange  = address.ErrIndexOutOfRange
)

// ErrEmptyCell indicates a single-cell read that returned no value.
var ErrEmptyCell = errors.New("empty cell")

// ErrHeaderNotFound indicates a field name missing from the header row.
var ErrHeaderNotFound = errors.New("header not found")

// ErrLegendNotFound indicates a row label missing from the legend column.
var ErrLegendNotFound = errors.New("legend not found")

// ErrNotScalar indicates a staged value that does not fit in one cell.
var ErrNotScalar = errors.New("staged value is not a scalar")

// ErrRemoteCallFailed matches every RemoteError.
var ErrRemoteCallFailed = errors.New("remote call failed")

// RemoteError wraps a failure reported by the range service or the
// credential flow.
type RemoteError struct {
	Op    string // "get", "set", "auth", "dial"
	Range string
	Err   error
}

func (e *RemoteError) Error() string {
	if e.Range == "" {
		return fmt.Sprintf("remote %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("remote %s %s failed: %v", e.Op, e.Range, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRemoteCallFailed.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteCallFailed
}

// NewRemoteError creates a new RemoteError.
func NewRemoteError(op, rangeExpr string, err error) *RemoteError {
	return &RemoteError{
		Op:    op,
		Range: rangeExpr,
		Err:   err,
	}
}
