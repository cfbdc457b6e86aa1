// Package matcher implements exact-then-fuzzy full-text phrase
// matching against the Bleve index built by internal/index.
package matcher

import "github.com/opentrep/opentrep-go/internal/catalog"

// Candidate is one indexed POR matched against a query phrase, with
// the information the scorer needs: the document's own relevance
// (normalized Bleve score), its edit distance from the query, and its
// PageRank-derived weight carried through from the index.
type Candidate struct {
	POR          *catalog.POR
	Relevance    float64
	EditDistance int
	Weight       float64
}
