package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicate        = errors.New("duplicate entry")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// Decision validation failures. Each one aborts the current case only.
var (
	ErrDateMismatch    = errors.New("citation docket date differs from promulgation date")
	ErrLegacyDateRange = errors.New("legacy decision dated after 1995-12-31")
	ErrBadDate         = errors.New("unparseable date")
)

// Justice attribution outcomes; both are recoverable.
var (
	ErrNoMatch   = errors.New("no justice matches")
	ErrAmbiguous = errors.New("multiple justices match")
)
