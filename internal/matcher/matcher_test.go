package matcher_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opentrep/opentrep-go/internal/catalog"
	"github.com/opentrep/opentrep-go/internal/index"
	"github.com/opentrep/opentrep-go/internal/matcher"
	"github.com/opentrep/opentrep-go/internal/pagerank"
	"github.com/opentrep/opentrep-go/internal/translit"
)

func buildTestIndex(t *testing.T) *matcher.Matcher {
	t.Helper()
	tr := translit.New(translit.DefaultRules())
	pors := []*catalog.POR{
		{
			Key:  catalog.Key{IATACode: "CDG", GeonameID: 1},
			Kind: catalog.Airport,
			Names: catalog.NameSet{
				Primary: catalog.Name{Lang: "en", Text: "Paris Charles de Gaulle"},
			},
		},
		{
			Key:  catalog.Key{IATACode: "MUC", GeonameID: 2},
			Kind: catalog.Airport,
			Names: catalog.NameSet{
				Primary:    catalog.Name{Lang: "en", Text: "Munich"},
				Alternates: []catalog.Name{{Lang: "de", Text: "München"}},
			},
		},
		{
			Key:  catalog.Key{IATACode: "GIG", GeonameID: 3},
			Kind: catalog.Airport,
			Names: catalog.NameSet{
				Primary: catalog.Name{Lang: "en", Text: "Rio de Janeiro"},
			},
		},
	}

	seq := func(yield func(*catalog.POR, error) bool) {
		for _, p := range pors {
			if !yield(p, nil) {
				return
			}
		}
	}

	path := filepath.Join(t.TempDir(), "idx")
	b := index.NewBuilder(tr, pagerank.Build(nil))
	require.NoError(t, b.Build(path, seq))

	idx, err := index.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	return matcher.New(idx, tr)
}

func TestMatch_ExactIATACode(t *testing.T) {
	m := buildTestIndex(t)
	candidates, err := m.Match(context.Background(), "cdg", 0)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	assert.Equal(t, "CDG", candidates[0].POR.IATACode)
	assert.Equal(t, 0, candidates[0].EditDistance)
}

func TestMatch_AccentFoldedEquivalence(t *testing.T) {
	m := buildTestIndex(t)
	plain, err := m.Match(context.Background(), "munich", 0)
	require.NoError(t, err)
	accented, err := m.Match(context.Background(), "münchen", 0)
	require.NoError(t, err)
	require.NotEmpty(t, plain)
	require.NotEmpty(t, accented)
	assert.Equal(t, plain[0].POR.IATACode, accented[0].POR.IATACode)
}

func TestMatch_FuzzyFallbackOnTypo(t *testing.T) {
	m := buildTestIndex(t)
	candidates, err := m.Match(context.Background(), "rio de janero", 0)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	assert.Equal(t, "GIG", candidates[0].POR.IATACode)
}

func TestMatch_EmptyPhraseYieldsNoCandidates(t *testing.T) {
	m := buildTestIndex(t)
	candidates, err := m.Match(context.Background(), "---", 0)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
