package index

import "fmt"

// BuildError wraps any failure opening or writing the Bleve index
// during a build.
type BuildError struct {
	Path string
	Op   string
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("index: %s at %s failed: %v", e.Op, e.Path, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// UnavailableError wraps a failure to open an existing index for
// querying, distinct from BuildError so callers can tell "the index is
// unusable" apart from "the build went wrong".
type UnavailableError struct {
	Path string
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("index: %s cannot be opened: %v", e.Path, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }
