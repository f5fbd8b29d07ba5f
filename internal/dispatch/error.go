package dispatch

import "errors"

// Error definitions for the dispatch package.
var (
	ErrNoRegistry       = errors.New("no registry loaded")
	ErrEngineRequired   = errors.New("an engine is required")
	ErrModeRequired     = errors.New("a mode other than unknown is required")
	ErrUnknownArgument  = errors.New("unknown argument")
	ErrInvalidValue     = errors.New("invalid argument value")
	ErrMissingPackages  = errors.New("required packages are not installed")
	ErrPackageCheckFail = errors.New("package check failed")
)
