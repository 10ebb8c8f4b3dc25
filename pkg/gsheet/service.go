package gsheet

import (
	"context"

	"github.com/ukaji3/gsheet-go/pkg/gsheet/address"
)

// RangeService reads and writes rectangular blocks of display strings.
// Implementations live in the remote package.
type RangeService interface {
	// GetRange returns the block stored in rng. Trailing empty rows and
	// cells may be omitted, so rows can be shorter than the range.
	GetRange(ctx context.Context, rng address.Range) ([][]string, error)
	// SetRange stores values at rng and returns the number of updated cells.
	SetRange(ctx context.Context, rng address.Range, values [][]string) (int, error)
}
