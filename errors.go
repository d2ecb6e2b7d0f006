package sequin

import "errors"

// Sentinel errors for construction-time failures. Rendering itself never
// fails: malformed combinations either produce valid-but-unintended SQL or
// an empty statement. These errors surface at the point of construction,
// where the caller can still see which value was at fault.
//
// Use the Is* helper functions to check for specific errors.
var (
	// ErrMissingColumn is returned by Table.Row when a required,
	// non-defaultable column is absent from the supplied values.
	ErrMissingColumn = errors.New("sequin: required column missing")

	// ErrConflictingWhen is returned when a second, different WHEN clause
	// is attached to a trigger. One trigger carries exactly one WHEN
	// condition; differing conditions need separate triggers.
	ErrConflictingWhen = errors.New("sequin: conflicting WHEN clauses on one trigger")

	// ErrInvalidFrame is returned when a window frame's BETWEEN bounds are
	// reversed (the start bound would evaluate after the end bound).
	ErrInvalidFrame = errors.New("sequin: invalid window frame bounds")
)

// IsMissingColumnErr returns true if err is or wraps ErrMissingColumn.
func IsMissingColumnErr(err error) bool {
	return errors.Is(err, ErrMissingColumn)
}

// IsConflictingWhenErr returns true if err is or wraps ErrConflictingWhen.
func IsConflictingWhenErr(err error) bool {
	return errors.Is(err, ErrConflictingWhen)
}

// IsInvalidFrameErr returns true if err is or wraps ErrInvalidFrame.
func IsInvalidFrameErr(err error) bool {
	return errors.Is(err, ErrInvalidFrame)
}
