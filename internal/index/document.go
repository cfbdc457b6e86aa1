// Package index builds and opens the Bleve full-text index over the
// POR catalog.
package index

// Document is the unit indexed per POR: Terms carries every searchable
// string form, Weight is the POR's normalized PageRank used as a
// scoring boost, and Record is the POR gob-encoded and base64-wrapped
// so a hit can be resolved back to a full catalog.POR without a second
// catalog lookup (base64 because Bleve's stored text fields are not a
// safe home for raw binary).
type Document struct {
	ID     string   `json:"id"`
	Terms  []string `json:"terms"`
	Weight float64  `json:"weight"`
	Record string   `json:"record"`
}
