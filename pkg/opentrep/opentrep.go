// Package opentrep is the public facade over the resolver: open a
// built index once (PageRank weights are baked into it by BuildIndex),
// then Interpret as many queries as needed.
package opentrep

import (
	"context"
	"iter"
	"time"

	"go.uber.org/zap"

	"github.com/opentrep/opentrep-go/internal/catalog"
	"github.com/opentrep/opentrep-go/internal/index"
	"github.com/opentrep/opentrep-go/internal/matcher"
	"github.com/opentrep/opentrep-go/internal/pagerank"
	"github.com/opentrep/opentrep-go/internal/resolver"
	"github.com/opentrep/opentrep-go/internal/resultenc"
	"github.com/opentrep/opentrep-go/internal/score"
	"github.com/opentrep/opentrep-go/internal/translit"
)

// Re-exported types so callers need only import this package.
type (
	Bundle   = resolver.Bundle
	Location = resolver.Location
	POR      = catalog.POR
)

// Resolver wraps an open index behind the resolver.Resolver selector.
type Resolver struct {
	closeIndex func() error
	inner      *resolver.Resolver
}

// Options configures Open. Zero values fall back to the defaults
// documented on each field.
type Options struct {
	Workers  int           // concurrent per-group matcher calls, default 4
	Deadline time.Duration // per-query wall-clock budget, default 2s
	Alpha    float64       // relevance exponent in the match score, default 1.0
	Epsilon  float64       // score of an unmatched group, default 1e-6
	Logger   *zap.Logger
}

// Open opens an on-disk index built by BuildIndex and returns a ready
// Resolver. Call Close when done to release the underlying index
// reader.
func Open(indexDir string, opts Options) (*Resolver, error) {
	idx, err := index.Open(indexDir)
	if err != nil {
		return nil, err
	}

	cfg := score.DefaultConfig()
	if opts.Alpha > 0 {
		cfg.Alpha = opts.Alpha
	}
	if opts.Epsilon > 0 {
		cfg.Epsilon = opts.Epsilon
	}

	tr := translit.New(translit.DefaultRules())
	m := matcher.New(idx, tr)
	inner := resolver.New(m, tr, cfg, opts.Workers, opts.Logger)
	if opts.Deadline > 0 {
		inner.Deadline = opts.Deadline
	}

	return &Resolver{closeIndex: idx.Close, inner: inner}, nil
}

// Close releases the resolver's index reader.
func (r *Resolver) Close() error {
	return r.closeIndex()
}

// Interpret resolves a free-form phrase into a Bundle of locations.
func (r *Resolver) Interpret(ctx context.Context, phrase string) (Bundle, error) {
	return r.inner.Interpret(ctx, phrase)
}

// BuildIndex streams pors through a fresh index build at indexDir,
// weighting documents by ranks (nil is valid: every POR falls back to
// pagerank.Floor).
func BuildIndex(indexDir string, pors iter.Seq2[*catalog.POR, error], ranks pagerank.Weights) error {
	tr := translit.New(translit.DefaultRules())
	b := index.NewBuilder(tr, ranks)
	return b.Build(indexDir, pors)
}

// MarshalJSON renders a Bundle as the external JSON envelope.
func MarshalJSON(bundle Bundle) ([]byte, error) { return resultenc.MarshalJSON(bundle) }

// MarshalBinary renders a Bundle as the schema-versioned binary envelope.
func MarshalBinary(bundle Bundle) ([]byte, error) { return resultenc.MarshalBinary(bundle) }
