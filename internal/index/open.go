package index

import "github.com/blevesearch/bleve/v2"

// Open opens an existing index read-only for querying.
func Open(path string) (bleve.Index, error) {
	idx, err := bleve.OpenUsing(path, map[string]interface{}{"read_only": true})
	if err != nil {
		return nil, &UnavailableError{Path: path, Err: err}
	}
	return idx, nil
}
