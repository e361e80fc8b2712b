package recording

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHeader means no line starting with "Time," was found.
	ErrNoHeader = errors.New("no header line starting with \"Time,\" found")

	// ErrNoChannels means the header declared no usable channel columns.
	ErrNoChannels = errors.New("header contains no channel columns")
)

// RowError reports a malformed data row. Any malformed row aborts the load.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: malformed data row: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
