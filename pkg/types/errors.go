package types

import "errors"

// Error classes for store operations. Call sites wrap these with context:
//
//	fmt.Errorf("%w: fuel percent must be between 0 and 100", types.ErrValidation)
//
// Callers branch with errors.Is. Both classes are recoverable: the failed
// operation leaves every store unchanged.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("record not found")
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// Backend lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)
