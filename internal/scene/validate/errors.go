package validate

import (
	"fmt"
	"strings"
)

// Error represents a single validation failure.
type Error struct {
	// Path is the dotted/bracketed path to the invalid value,
	// e.g. "nodes[0].children[1].transform.position.x".
	Path string

	// Message describes what's wrong.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Path, e.Message)
}

// Errors collects multiple validation errors. The zero value is ready to use.
type Errors struct {
	Errors []*Error
}

// Error implements the error interface.
func (e *Errors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e.Errors), strings.Join(msgs, "\n  - "))
}

// Add adds a validation error at the given path.
func (e *Errors) Add(path, message string) {
	e.Errors = append(e.Errors, &Error{Path: path, Message: message})
}

// Addf adds a validation error with a formatted message.
func (e *Errors) Addf(path, format string, args ...any) {
	e.Add(path, fmt.Sprintf(format, args...))
}

// HasErrors returns true if there are any errors.
func (e *Errors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Len returns the number of errors.
func (e *Errors) Len() int {
	return len(e.Errors)
}

// Messages returns every error as a formatted string.
func (e *Errors) Messages() []string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return msgs
}

// AsError returns nil if no errors, otherwise returns self.
func (e *Errors) AsError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// joinPath appends a field name to a base path.
func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

// indexPath appends a bracketed index to a base path.
func indexPath(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}
