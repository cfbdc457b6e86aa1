package matcher

import (
	"context"
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/blevesearch/bleve/v2"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/opentrep/opentrep-go/internal/catalog"
	"github.com/opentrep/opentrep-go/internal/index"
	"github.com/opentrep/opentrep-go/internal/translit"
)

const defaultTopK = 20

// Matcher runs exact-then-fuzzy phrase matching against a Bleve index.
type Matcher struct {
	Index     bleve.Index
	Translit  translit.Transliterator
	TopK      int
	MaxEditOf func(phrase string) int
}

// New wraps an already-open read-only Bleve index.
func New(idx bleve.Index, tr translit.Transliterator) *Matcher {
	return &Matcher{Index: idx, Translit: tr, TopK: defaultTopK, MaxEditOf: DefaultMaxEdit}
}

// DefaultMaxEdit is the edit-distance allowance used when the caller
// does not pick one: a quarter of the phrase length, capped at 3.
func DefaultMaxEdit(phrase string) int {
	edit := len(phrase) / 4
	if edit > 3 {
		return 3
	}
	return edit
}

// Match runs the exact pass first and only falls back to the fuzzy
// neighbor-expansion pass when the exact pass finds nothing.
// maxEdit <= 0 selects the default of DefaultMaxEdit.
func (m *Matcher) Match(ctx context.Context, phrase string, maxEdit int) ([]Candidate, error) {
	words := m.Translit.Tokenize(phrase)
	if len(words) == 0 {
		return nil, nil
	}
	if maxEdit <= 0 {
		maxEdit = m.MaxEditOf(phrase)
	}

	normalized := m.Translit.Transliterate(phrase)

	candidates, err := m.search(ctx, exactQuery(words), normalized, maxEdit, true)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		candidates, err = m.search(ctx, fuzzyQuery(words), normalized, maxEdit, false)
		if err != nil {
			return nil, err
		}
	}

	return m.rank(candidates), nil
}

func exactQuery(words []string) blevequery.Query {
	conj := blevequery.NewConjunctionQuery(nil)
	for _, w := range words {
		q := blevequery.NewMatchQuery(w)
		q.SetField("terms")
		conj.AddQuery(q)
	}
	return conj
}

func fuzzyQuery(words []string) blevequery.Query {
	disj := blevequery.NewDisjunctionQuery(nil)
	for _, w := range expandNeighbors(words) {
		q := blevequery.NewMatchQuery(w)
		q.SetField("terms")
		disj.AddQuery(q)
	}
	return disj
}

func (m *Matcher) search(ctx context.Context, q blevequery.Query, normalized string, maxEdit int, exact bool) ([]Candidate, error) {
	req := bleve.NewSearchRequest(q)
	req.Size = m.TopK * 4
	req.Fields = []string{"record", "weight"}

	result, err := m.Index.SearchInContext(ctx, req)
	if err != nil {
		return nil, &IndexUnavailable{Op: "search", Err: err}
	}

	var topScore float64
	for _, hit := range result.Hits {
		if hit.Score > topScore {
			topScore = hit.Score
		}
	}
	if topScore == 0 {
		topScore = 1
	}

	candidates := make([]Candidate, 0, len(result.Hits))
	for _, hit := range result.Hits {
		record, _ := hit.Fields["record"].(string)
		por, derr := index.DecodeRecord(record)
		if derr != nil {
			continue
		}

		dist := 0
		if !exact {
			dist = m.bestDistance(normalized, por)
			if dist > maxEdit {
				continue
			}
		}

		weight, _ := hit.Fields["weight"].(float64)
		candidates = append(candidates, Candidate{
			POR:          por,
			Relevance:    hit.Score / topScore,
			EditDistance: dist,
			Weight:       weight,
		})
	}
	return candidates, nil
}

// bestDistance returns the smallest Levenshtein distance between the
// (already transliterated) phrase and any of the POR's own name forms,
// including its serving cities' names and its own IATA/ICAO codes,
// each run through the same transliterator so the comparison is
// apples-to-apples regardless of source script or accenting.
func (m *Matcher) bestDistance(phrase string, por *catalog.POR) int {
	best := -1
	consider := func(s string) {
		d := levenshtein.ComputeDistance(phrase, m.Translit.Transliterate(s))
		if best == -1 || d < best {
			best = d
		}
	}
	for _, n := range por.Names.All() {
		consider(n)
	}
	for _, city := range por.Cities {
		for _, n := range city.Names.All() {
			consider(n)
		}
	}
	if por.IATACode != "" {
		consider(por.IATACode)
	}
	if por.ICAOCode != "" {
		consider(por.ICAOCode)
	}
	if best == -1 {
		return len(phrase)
	}
	return best
}

func (m *Matcher) rank(candidates []Candidate) []Candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Weight != candidates[j].Weight {
			return candidates[i].Weight > candidates[j].Weight
		}
		if candidates[i].EditDistance != candidates[j].EditDistance {
			return candidates[i].EditDistance < candidates[j].EditDistance
		}
		return index.DocID(candidates[i].POR) < index.DocID(candidates[j].POR)
	})
	if len(candidates) > m.TopK {
		candidates = candidates[:m.TopK]
	}
	return candidates
}
