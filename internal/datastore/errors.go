package datastore

import (
	"fmt"
)

// ParseError reports a state file that exists but cannot be read or decoded.
// Callers must treat it as fatal for the cycle rather than fall back to an
// empty state.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse state file '%s': %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to parse state file '%s'", e.Path)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(path string, err error) *ParseError {
	return &ParseError{Path: path, Err: err}
}
