package ledger

import "errors"

var (
	// ErrNotFound is returned by mutations that reference an unknown id.
	ErrNotFound = errors.New("transaction not found")

	// ErrCorruptData is returned when the persisted dataset exists but cannot
	// be parsed into the transaction schema.
	ErrCorruptData = errors.New("corrupt ledger data")

	// ErrInvalidArgument is returned for malformed query parameters.
	ErrInvalidArgument = errors.New("invalid argument")
)
