package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown MIME type or annotator name.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNotImplemented indicates a feature whose backing adapter is not
	// configured, such as annotation storage.
	ErrNotImplemented = errors.New("not implemented")

	// Extraction Errors.

	// ErrConfiguration indicates a runtime parameter is unusable, such as a
	// date pattern that does not compile. It is reported before any
	// document is scanned.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrNoInputDocuments indicates the container holds no text documents.
	ErrNoInputDocuments = errors.New("no text documents in input")

	// ErrUnrecognizedDate indicates a matched span fits none of the known
	// date templates. It is logged and the span skipped; it never reaches
	// the caller of an extraction.
	ErrUnrecognizedDate = errors.New("unrecognized date format")
)
