package wire

import (
	"fmt"

	"github.com/dshills/scenestorm/internal/scene/validate"
)

// ParseError indicates the wire text is not well-formed JSON.
type ParseError struct {
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse world document: %v", e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnsupportedVersionError indicates wire text from a future schema version.
// The serializer never guesses at unknown versions.
type UnsupportedVersionError struct {
	Version   int
	Supported int
}

// Error implements the error interface.
func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported world version %d (current is %d)", e.Version, e.Supported)
}

// ValidationError aggregates every model violation found while serializing
// or deserializing a document.
type ValidationError struct {
	Errors *validate.Errors
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid world document: %s", e.Errors.Error())
}

// Unwrap returns the underlying error list.
func (e *ValidationError) Unwrap() error {
	return e.Errors
}
