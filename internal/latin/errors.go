package latin

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup yields neither an entry nor any
// disambiguation data.
var ErrNotFound = errors.New("entry not found")

// ErrEndOfStream signals an exhausted token stream. It never leaves the
// extraction layer.
var ErrEndOfStream = errors.New("end of token stream")

// ParseError reports a violated structural assumption about the markup.
type ParseError struct {
	Op     string // Extraction step, e.g. "candidate", "forms"
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.Op, e.Detail)
}

// NewParseError creates a ParseError with a formatted detail message.
func NewParseError(op, format string, args ...any) *ParseError {
	return &ParseError{Op: op, Detail: fmt.Sprintf(format, args...)}
}

// IsParseError reports whether err wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
