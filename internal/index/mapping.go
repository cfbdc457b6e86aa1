package index

import "github.com/blevesearch/bleve/v2/mapping"

// buildMapping returns the document mapping used for both building
// and querying the index. Terms is keyword-analyzed because
// translit.Transliterator has already normalized every term (folded
// case, stripped accents, transliterated non-Latin scripts) — running
// Bleve's own stemming/stop-word analysis on top of that would only
// discard information we have already decided to keep. Weight is a
// plain numeric field so callers can combine it with match relevance
// during scoring.
func buildMapping() *mapping.IndexMappingImpl {
	termsField := mapping.NewTextFieldMapping()
	termsField.Analyzer = "keyword"
	termsField.Store = false
	termsField.IncludeInAll = false

	weightField := mapping.NewNumericFieldMapping()
	weightField.Store = true
	weightField.IncludeInAll = false

	recordField := mapping.NewTextFieldMapping()
	recordField.Index = false
	recordField.Store = true
	recordField.IncludeInAll = false

	idField := mapping.NewTextFieldMapping()
	idField.Store = true
	idField.IncludeInAll = false

	doc := mapping.NewDocumentMapping()
	doc.AddFieldMappingsAt("terms", termsField)
	doc.AddFieldMappingsAt("weight", weightField)
	doc.AddFieldMappingsAt("record", recordField)
	doc.AddFieldMappingsAt("id", idField)

	im := mapping.NewIndexMapping()
	im.DefaultMapping = doc
	im.DefaultAnalyzer = "keyword"
	return im
}
