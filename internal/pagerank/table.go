// Package pagerank loads and serves the POR popularity weight table:
// a mapping from POR key to a normalized weight in (0,1].
package pagerank

import (
	"fmt"
	"strings"
)

// Floor is the weight returned for keys absent from the table.
const Floor = 1e-3

// KindAirport etc. mirror the catalog LocationType letters used in the
// "IATA-kind" composite key form of the PageRank file. Ferry uses
// historical letter 'P' (see catalog.Ferry).
const (
	KindAirport  = 'A'
	KindRail     = 'R'
	KindBus      = 'B'
	KindFerry    = 'P'
	KindHeliport = 'H'
	KindOffpoint = 'O'
	KindCity     = 'C'
)

// Key builds the composite "IATA-kind" lookup key.
func Key(iata string, kind byte) string {
	return fmt.Sprintf("%s-%c", iata, kind)
}

// Weights answers normalized weight lookups; satisfied by *Table and
// *CachedTable.
type Weights interface {
	Lookup(key string) float64
}

// Table is a read-only, normalized POR-key → weight mapping.
// Lookup always returns a strictly positive value.
type Table struct {
	weights map[string]float64
}

// Build normalizes raw (by dividing every weight by the maximum) and
// returns the resulting Table. Raw weights must be positive; a zero or
// empty input yields a Table that falls back to Floor for every key.
func Build(raw map[string]float64) *Table {
	max := 0.0
	for _, w := range raw {
		if w > max {
			max = w
		}
	}
	if max <= 0 {
		return &Table{weights: map[string]float64{}}
	}

	weights := make(map[string]float64, len(raw))
	for k, w := range raw {
		if w <= 0 {
			continue
		}
		weights[k] = w / max
	}
	return &Table{weights: weights}
}

// Lookup returns the normalized weight for key, or Floor if absent.
// A composite "IATA-kind" key missing from the table falls back to its
// bare IATA code, since weight files may carry either key form.
func (t *Table) Lookup(key string) float64 {
	if t == nil {
		return Floor
	}
	if w, ok := t.weights[key]; ok && w > 0 {
		return w
	}
	if iata, _, ok := strings.Cut(key, "-"); ok {
		if w, ok := t.weights[iata]; ok && w > 0 {
			return w
		}
	}
	return Floor
}

// Len reports the number of keys with a non-floor weight.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.weights)
}
