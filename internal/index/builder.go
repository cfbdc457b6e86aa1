package index

import (
	"bytes"
	"encoding/base64"
	"encoding/gob"
	"fmt"
	"iter"
	"os"
	"time"

	"github.com/blevesearch/bleve/v2"

	"github.com/opentrep/opentrep-go/internal/catalog"
	"github.com/opentrep/opentrep-go/internal/pagerank"
	"github.com/opentrep/opentrep-go/internal/translit"
)

// Builder builds a fresh on-disk Bleve index from a catalog stream.
type Builder struct {
	Translit  translit.Transliterator
	PageRank  pagerank.Weights
	BatchSize int

	// AsOf is the reference time for each record's validity window;
	// records not valid at AsOf are skipped. Zero means time.Now().
	AsOf time.Time
}

// NewBuilder returns a Builder with the given transliterator and
// PageRank weights. A nil ranks is valid: every POR falls back to
// pagerank.Floor.
func NewBuilder(tr translit.Transliterator, ranks pagerank.Weights) *Builder {
	return &Builder{Translit: tr, PageRank: ranks, BatchSize: 500}
}

// Build removes any existing index directory at path, creates a fresh
// Bleve index there, and indexes every POR produced by records. It
// stops and removes the partially-written directory on first error:
// a failed build never leaves a corrupt index behind.
func (b *Builder) Build(path string, records iter.Seq2[*catalog.POR, error]) (err error) {
	if err := os.RemoveAll(path); err != nil {
		return &BuildError{Path: path, Op: "remove stale directory", Err: err}
	}

	bleveIndex, err := bleve.New(path, buildMapping())
	if err != nil {
		_ = os.RemoveAll(path)
		return &BuildError{Path: path, Op: "create", Err: err}
	}
	defer func() {
		if cerr := bleveIndex.Close(); cerr != nil && err == nil {
			_ = os.RemoveAll(path)
			err = &BuildError{Path: path, Op: "close", Err: cerr}
		}
	}()

	batch := bleveIndex.NewBatch()
	size := b.BatchSize
	if size <= 0 {
		size = 500
	}
	asOf := b.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	flush := func() error {
		if batch.Size() == 0 {
			return nil
		}
		if ferr := bleveIndex.Batch(batch); ferr != nil {
			return &BuildError{Path: path, Op: "batch index", Err: ferr}
		}
		batch.Reset()
		return nil
	}

	for por, recErr := range records {
		if recErr != nil {
			// A yielded catalog error is fatal to the build: a silently
			// truncated index is worse than no index. Callers wanting to
			// skip malformed lines filter the sequence first (see
			// catalog.SkipFormatErrors).
			_ = os.RemoveAll(path)
			return recErr
		}
		if !por.Valid(asOf) {
			continue
		}
		doc, derr := b.document(por)
		if derr != nil {
			_ = os.RemoveAll(path)
			return &BuildError{Path: path, Op: "encode document", Err: derr}
		}
		if aerr := batch.Index(doc.ID, doc); aerr != nil {
			_ = os.RemoveAll(path)
			return &BuildError{Path: path, Op: "add to batch", Err: aerr}
		}
		if batch.Size() >= size {
			if ferr := flush(); ferr != nil {
				_ = os.RemoveAll(path)
				return ferr
			}
		}
	}
	if ferr := flush(); ferr != nil {
		_ = os.RemoveAll(path)
		return ferr
	}
	return nil
}

// document computes the searchable term set for a POR: its own names
// (primary + alternates) both as whole strings and word by word, its
// serving cities' names and IATA codes, and its own IATA/ICAO codes,
// each transliterated.
func (b *Builder) document(por *catalog.POR) (Document, error) {
	var terms []string
	for _, n := range por.Names.All() {
		terms = append(terms, b.Translit.Transliterate(n))
		terms = append(terms, b.Translit.Tokenize(n)...)
	}
	for _, city := range por.Cities {
		if city.IATACode != "" {
			terms = append(terms, b.Translit.Transliterate(city.IATACode))
		}
		for _, n := range city.Names.All() {
			terms = append(terms, b.Translit.Transliterate(n))
			terms = append(terms, b.Translit.Tokenize(n)...)
		}
	}
	if por.IATACode != "" {
		terms = append(terms, b.Translit.Transliterate(por.IATACode))
	}
	if por.ICAOCode != "" {
		terms = append(terms, b.Translit.Transliterate(por.ICAOCode))
	}

	weight := pagerank.Floor
	if b.PageRank != nil {
		weight = b.PageRank.Lookup(pagerank.Key(por.IATACode, byte(por.Kind)))
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(por); err != nil {
		return Document{}, fmt.Errorf("gob encode %s: %w", por.IATACode, err)
	}

	return Document{
		ID:     DocID(por),
		Terms:  dedup(terms),
		Weight: weight,
		Record: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

// DecodeRecord reverses the gob+base64 encoding applied to a
// Document's Record field, yielding the original catalog.POR.
func DecodeRecord(record string) (*catalog.POR, error) {
	raw, err := base64.StdEncoding.DecodeString(record)
	if err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	var por catalog.POR
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&por); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &por, nil
}

// DocID is the stable identifier a POR is indexed under: its IATA code
// qualified by location kind, or a Geonames-derived id when the record
// has no IATA code.
func DocID(por *catalog.POR) string {
	if por.IATACode != "" {
		return fmt.Sprintf("%s-%c", por.IATACode, por.Kind)
	}
	return fmt.Sprintf("geo-%d", por.GeonameID)
}

func dedup(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := terms[:0]
	for _, t := range terms {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
