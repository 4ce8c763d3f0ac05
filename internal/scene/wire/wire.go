// Package wire produces and consumes the versioned JSON representation of
// world documents. It wraps the validator: nothing invalid is ever written,
// and nothing parsed is trusted until it has been validated.
package wire

import (
	"encoding/json"
	"errors"

	"github.com/dshills/scenestorm/internal/scene"
	"github.com/dshills/scenestorm/internal/scene/validate"
)

// CurrentVersion is the schema version written by Marshal and the newest
// version Unmarshal accepts.
const CurrentVersion = 1

// oldestVersion is the sentinel assigned to wire text with no version
// field, predating the versioning scheme.
const oldestVersion = 0

// Marshal validates the document and encodes it as pretty-printed JSON.
// The encoded version field is always stamped to CurrentVersion, overriding
// whatever the document carried. Returns a *ValidationError if the document
// violates any model invariant.
func Marshal(doc *scene.Document) ([]byte, error) {
	if errs := validate.Document(doc); errs.HasErrors() {
		return nil, &ValidationError{Errors: errs}
	}

	out := *doc
	out.Version = CurrentVersion

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return data, nil
}

// Unmarshal parses wire text into a validated document. The version field
// defaults to 0 when absent; versions newer than CurrentVersion are
// rejected before any field validation. On success the returned document
// has its version stamped to CurrentVersion.
//
// Errors are *ParseError for malformed text, *UnsupportedVersionError for
// a future schema version, and *ValidationError for anything that parsed
// but violates the model.
func Unmarshal(data []byte) (*scene.Document, error) {
	var probe struct {
		Version *int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, decodeError(err)
	}

	version := oldestVersion
	if probe.Version != nil {
		version = *probe.Version
	}
	if version > CurrentVersion {
		return nil, &UnsupportedVersionError{Version: version, Supported: CurrentVersion}
	}

	var doc scene.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, decodeError(err)
	}

	migrated := migrate(&doc, version)
	if errs := validate.Document(migrated); errs.HasErrors() {
		return nil, &ValidationError{Errors: errs}
	}
	return migrated, nil
}

// migrate rewrites a document from the given source version up to
// CurrentVersion. Today the only supported migration is the identity:
// version 0 and version 1 share a structure, so migration just stamps the
// version. This is the seam for future structural rewrites.
func migrate(doc *scene.Document, from int) *scene.Document {
	_ = from
	doc.Version = CurrentVersion
	return doc
}

// decodeError classifies a json error: shape mismatches in otherwise
// well-formed text are validation failures at the offending path, anything
// else is a parse failure.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		errs := &validate.Errors{}
		path := typeErr.Field
		if path == "" {
			path = "document"
		}
		errs.Addf(path, "must be %s, got %s", typeErr.Type.String(), typeErr.Value)
		return &ValidationError{Errors: errs}
	}
	return &ParseError{Err: err}
}
