package address

import "errors"

// ErrMalformedAddress indicates a position string that does not split into a
// non-empty alphabetic column and a positive numeric row.
var ErrMalformedAddress = errors.New("malformed address")

// ErrUnknownColumn indicates a column label with no column index.
var ErrUnknownColumn = errors.New("unknown column")

// ErrIndexOutOfRange indicates a column index (or extent) outside the sheet.
var ErrIndexOutOfRange = errors.New("index out of range")
