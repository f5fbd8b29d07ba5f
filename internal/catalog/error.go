package catalog

import "errors"

// Error definitions for the catalog package.
var (
	ErrInvalidDocument    = errors.New("invalid catalog document")
	ErrUnsupportedVersion = errors.New("unsupported catalog version")
	ErrUnknownHook        = errors.New("unknown hook")
	ErrNoFiles            = errors.New("no catalog files matched")
)
