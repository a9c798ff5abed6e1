package domain

import "errors"

// Pipeline-level errors. These are the failure modes of the reconstruction
// core itself; infrastructure errors live in the ports package.
var (
	// ErrEmptyData means there are no observations to build a series from.
	// An upstream "no data" response surfaces as this same error.
	ErrEmptyData = errors.New("no observations to build a series from")
	// ErrInsufficientData means a computation needing variance was given
	// fewer than two points.
	ErrInsufficientData = errors.New("not enough data points for the computation")
	// ErrZeroRange means a numeric interval has zero width and cannot be
	// mapped onto another.
	ErrZeroRange = errors.New("degenerate numeric range (zero width)")
)
