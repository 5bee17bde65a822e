package bdata

import "fmt"

// NotLoadedError is returned by Search before a successful load.
type NotLoadedError struct{}

// InvalidFormatError is returned when the query is not 6 to 8 ASCII digits.
type InvalidFormatError struct {
	Bin string
}

// NotFoundError is returned when a well-formed BIN is absent from the table.
type NotFoundError struct {
	Bin string
}

var (
	_ error = NotLoadedError{}
	_ error = InvalidFormatError{}
	_ error = NotFoundError{}
)

// ErrNotLoaded is the NotLoadedError every Search on an empty store returns.
var ErrNotLoaded = NotLoadedError{}

func (NotLoadedError) Error() string {
	return "BIN database not loaded. Call load_bins() first."
}

func (e InvalidFormatError) Error() string {
	return fmt.Sprintf("Invalid BIN format: %s", e.Bin)
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("BIN not found: %s", e.Bin)
}
