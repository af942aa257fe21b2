package search

// invalidBoundsError signals a caller error in the search bounds. It is fatal
// to the single model's search, not to the run.
type invalidBoundsError struct{ msg string }

func (e invalidBoundsError) Error() string { return "invalid bounds: " + e.msg }

// ErrInvalidBounds constructs an invalidBoundsError.
func ErrInvalidBounds(msg string) error { return invalidBoundsError{msg: msg} }

// IsInvalidBounds reports whether err indicates bad caller-supplied bounds.
func IsInvalidBounds(err error) bool {
	_, ok := err.(invalidBoundsError)
	return ok
}
