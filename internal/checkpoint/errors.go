package checkpoint

import "fmt"

// corruptError signals that a checkpoint file exists but cannot be parsed.
// Fatal to the run: prior results must not be silently discarded.
type corruptError struct {
	path string
	err  error
}

func (e corruptError) Error() string {
	return fmt.Sprintf("corrupt checkpoint %s: %v", e.path, e.err)
}

func (e corruptError) Unwrap() error { return e.err }

// IsCorrupt reports whether err indicates an unparseable checkpoint file.
func IsCorrupt(err error) bool {
	_, ok := err.(corruptError)
	return ok
}

// duplicateError signals an attempt to append an already-measured
// (config, concurrency) pair. This is an orchestration bug, not a data
// condition: already-measured points must be skipped before Append.
type duplicateError struct {
	model       string
	config      string
	concurrency int
}

func (e duplicateError) Error() string {
	return fmt.Sprintf("duplicate measurement for model %s config %q concurrency %d", e.model, e.config, e.concurrency)
}

// IsDuplicateMeasurement reports whether err indicates a duplicate append.
func IsDuplicateMeasurement(err error) bool {
	_, ok := err.(duplicateError)
	return ok
}
