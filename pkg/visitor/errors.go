package visitor

import "errors"

var (
	// ErrTokenInvalid indicates a malformed, tampered or expired token
	ErrTokenInvalid = errors.New("visitor.token_invalid")

	// ErrNotFound indicates no record exists for the given identifier
	ErrNotFound = errors.New("visitor.not_found")

	// ErrNotUsable indicates the record exists but can no longer authenticate
	ErrNotUsable = errors.New("visitor.not_usable")

	// ErrNilRecord indicates a nil record was passed where one is required
	ErrNilRecord = errors.New("visitor.nil_record")

	// ErrInvalidSnapshot indicates session state that does not decode to a snapshot
	ErrInvalidSnapshot = errors.New("visitor.invalid_snapshot")
)
