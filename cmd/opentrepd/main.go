// Command opentrepd is the OpenTREP resolver's CLI and server entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/opentrep/opentrep-go/internal/catalog"
	"github.com/opentrep/opentrep-go/internal/index"
	"github.com/opentrep/opentrep-go/internal/matcher"
	"github.com/opentrep/opentrep-go/internal/pagerank"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps the typed errors of the internal packages onto the
// documented exit codes: 1 input not found, 2 parse error, 3 index
// unusable, 4 anything else.
func exitCode(err error) int {
	var catalogNotReadable *catalog.NotReadableError
	var pagerankNotReadable *pagerank.NotReadableError
	var formatErr *catalog.FormatError
	var unavailable *index.UnavailableError
	var searchFailed *matcher.IndexUnavailable
	var buildFailed *index.BuildError

	switch {
	case errors.As(err, &catalogNotReadable), errors.As(err, &pagerankNotReadable):
		return 1
	case errors.As(err, &formatErr):
		return 2
	case errors.As(err, &unavailable), errors.As(err, &searchFailed), errors.As(err, &buildFailed):
		return 3
	default:
		return 4
	}
}
