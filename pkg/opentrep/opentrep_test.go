package opentrep_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opentrep/opentrep-go/internal/catalog"
	"github.com/opentrep/opentrep-go/pkg/opentrep"
)

func TestBuildIndexAndInterpret(t *testing.T) {
	pors := []*catalog.POR{
		{Key: catalog.Key{IATACode: "CDG", GeonameID: 1}, Kind: catalog.Airport,
			Names: catalog.NameSet{Primary: catalog.Name{Lang: "en", Text: "Paris Charles de Gaulle"}}},
	}
	seq := func(yield func(*catalog.POR, error) bool) {
		for _, p := range pors {
			if !yield(p, nil) {
				return
			}
		}
	}

	dir := filepath.Join(t.TempDir(), "idx")
	require.NoError(t, opentrep.BuildIndex(dir, seq, nil))

	r, err := opentrep.Open(dir, opentrep.Options{Workers: 2})
	require.NoError(t, err)
	defer r.Close()

	bundle, err := r.Interpret(context.Background(), "cdg")
	require.NoError(t, err)
	require.Len(t, bundle.Locations, 1)
	assert.Equal(t, "CDG", bundle.Locations[0].POR.IATACode)

	data, err := opentrep.MarshalJSON(bundle)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CDG")
}
