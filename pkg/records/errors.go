package records

import "errors"

var (
	// ErrNotFound indicates the container path does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrMalformedInput indicates the container is not valid JSON or its
	// root is not an array of records.
	ErrMalformedInput = errors.New("malformed input")
)
