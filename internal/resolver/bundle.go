// Package resolver implements the selector: it partitions a free-form
// query into word groups, matches each group against the full-text
// index, and picks the best-scoring combination of matches.
package resolver

import "github.com/opentrep/opentrep-go/internal/catalog"

// Location is one resolved POR alongside the words of the query it
// was matched against and its final MatchScore.
type Location struct {
	POR   *catalog.POR
	Words []string
	Score float64
}

// Bundle is the outcome of resolving one query: the locations found,
// any word groups that matched nothing, the partition's overall score,
// and whether resolution had to stop early (deadline or full
// cancellation) before exhausting every partition.
type Bundle struct {
	Locations []Location
	Unmatched [][]string
	Score     float64
	Partial   bool
}
