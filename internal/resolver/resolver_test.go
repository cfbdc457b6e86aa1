package resolver_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opentrep/opentrep-go/internal/catalog"
	"github.com/opentrep/opentrep-go/internal/index"
	"github.com/opentrep/opentrep-go/internal/matcher"
	"github.com/opentrep/opentrep-go/internal/pagerank"
	"github.com/opentrep/opentrep-go/internal/resolver"
	"github.com/opentrep/opentrep-go/internal/score"
	"github.com/opentrep/opentrep-go/internal/translit"
)

func buildResolver(t *testing.T) *resolver.Resolver {
	t.Helper()
	tr := translit.New(translit.DefaultRules())

	pors := []*catalog.POR{
		{Key: catalog.Key{IATACode: "CDG", GeonameID: 1}, Kind: catalog.Airport,
			Names: catalog.NameSet{Primary: catalog.Name{Lang: "en", Text: "Paris Charles de Gaulle"}}},
		{Key: catalog.Key{IATACode: "MUC", GeonameID: 2}, Kind: catalog.Airport,
			Names: catalog.NameSet{
				Primary:    catalog.Name{Lang: "en", Text: "Munich"},
				Alternates: []catalog.Name{{Lang: "de", Text: "München"}},
			}},
		{Key: catalog.Key{IATACode: "GIG", GeonameID: 3}, Kind: catalog.Airport,
			Names: catalog.NameSet{Primary: catalog.Name{Lang: "en", Text: "Rio de Janeiro"}}},
		{Key: catalog.Key{IATACode: "SFO", GeonameID: 4}, Kind: catalog.Airport,
			Names: catalog.NameSet{Primary: catalog.Name{Lang: "en", Text: "San Francisco"}}},
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

	m := matcher.New(idx, tr)
	return resolver.New(m, tr, score.DefaultConfig(), 4, nil)
}

func TestInterpret_ExactIATACode(t *testing.T) {
	r := buildResolver(t)
	bundle, err := r.Interpret(context.Background(), "cdg")
	require.NoError(t, err)
	require.Len(t, bundle.Locations, 1)
	assert.Equal(t, "CDG", bundle.Locations[0].POR.IATACode)
	assert.Empty(t, bundle.Unmatched)
	assert.False(t, bundle.Partial)
}

func TestInterpret_AccentEquivalence(t *testing.T) {
	r := buildResolver(t)
	plain, err := r.Interpret(context.Background(), "munich")
	require.NoError(t, err)
	accented, err := r.Interpret(context.Background(), "münchen")
	require.NoError(t, err)
	require.Len(t, plain.Locations, 1)
	require.Len(t, accented.Locations, 1)
	assert.Equal(t, plain.Locations[0].POR.IATACode, accented.Locations[0].POR.IATACode)
}

func TestInterpret_SingleTypoFuzzyMatch(t *testing.T) {
	r := buildResolver(t)
	bundle, err := r.Interpret(context.Background(), "rio de janero")
	require.NoError(t, err)
	require.NotEmpty(t, bundle.Locations)
	assert.Equal(t, "GIG", bundle.Locations[0].POR.IATACode)
}

func TestInterpret_TwoCityMultiPartition(t *testing.T) {
	r := buildResolver(t)
	bundle, err := r.Interpret(context.Background(), "san francisco rio de janero")
	require.NoError(t, err)
	codes := make([]string, 0, len(bundle.Locations))
	for _, loc := range bundle.Locations {
		codes = append(codes, loc.POR.IATACode)
	}
	assert.Contains(t, codes, "SFO")
	assert.Contains(t, codes, "GIG")
}

func TestInterpret_UnmatchedNoise(t *testing.T) {
	r := buildResolver(t)
	bundle, err := r.Interpret(context.Background(), "cdg blargh")
	require.NoError(t, err)
	assert.NotEmpty(t, bundle.Locations)
	assert.NotEmpty(t, bundle.Unmatched)
}

func TestInterpret_EmptyAfterTransliterationIsNotAnError(t *testing.T) {
	r := buildResolver(t)
	bundle, err := r.Interpret(context.Background(), "---")
	require.NoError(t, err)
	assert.Empty(t, bundle.Locations)
	assert.Empty(t, bundle.Unmatched)
	assert.False(t, bundle.Partial)
}

func TestInterpret_ExpiredDeadlineReturnsPartial(t *testing.T) {
	r := buildResolver(t)
	r.Deadline = time.Nanosecond
	bundle, err := r.Interpret(context.Background(), "san francisco rio de janeiro")
	require.NoError(t, err)
	assert.True(t, bundle.Partial)
}

func TestInterpret_DeterministicAcrossCalls(t *testing.T) {
	r := buildResolver(t)
	first, err := r.Interpret(context.Background(), "san francisco rio de janero")
	require.NoError(t, err)
	second, err := r.Interpret(context.Background(), "san francisco rio de janero")
	require.NoError(t, err)
	require.Equal(t, len(first.Locations), len(second.Locations))
	for i := range first.Locations {
		assert.Equal(t, first.Locations[i].POR.IATACode, second.Locations[i].POR.IATACode)
		assert.InDelta(t, first.Locations[i].Score, second.Locations[i].Score, 1e-12)
	}
	assert.InDelta(t, first.Score, second.Score, 1e-12)
}
