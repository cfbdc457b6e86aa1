// Package translit normalizes free-form Unicode strings into the ASCII,
// lower-case form indexed by the full-text engine and produced at query
// time, so a build-time term and a query-time term compare equal.
package translit

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Rules is the configured set of substitutions applied during
// transliteration. A Rules value is immutable once constructed and safe
// to share across goroutines.
type Rules struct {
	// Punctuation holds code points removed outright (step 2).
	Punctuation map[rune]bool
	// Quotes maps curly/typographic quote runes to their ASCII form.
	Quotes map[rune]rune
	// Dashes holds dash-like runes replaced with a space.
	Dashes map[rune]bool
}

// DefaultRules returns the rule set used throughout the index build and
// the resolver. Re-index if these rules ever change: the transliteration
// of a given byte string must be identical at build time and query time.
func DefaultRules() Rules {
	// Quote runes are deliberately excluded here: they are the
	// substitution target of Quotes below, and must survive a second
	// transliteration pass unchanged (idempotence).
	punctuation := map[rune]bool{}
	for _, r := range ".,;:!?()[]{}<>/\\|@#$%^&*_+=~`" {
		punctuation[r] = true
	}
	return Rules{
		Punctuation: punctuation,
		Quotes: map[rune]rune{
			'‘': '\'', '’': '\'',
			'“': '"', '”': '"',
			'«': '"', '»': '"',
		},
		Dashes: map[rune]bool{
			'-': true, '‐': true, '‑': true,
			'‒': true, '–': true, '—': true,
		},
	}
}

// Transliterator is a pure function of its input and its Rules. It is a
// plain value type, not a process-wide singleton: callers construct one
// with New and pass it around explicitly.
type Transliterator struct {
	rules       Rules
	markRemover transform.Transformer
}

// New builds a Transliterator bound to rules.
func New(rules Rules) Transliterator {
	return Transliterator{
		rules:       rules,
		markRemover: runes.Remove(runes.In(unicode.Mn)),
	}
}

// Transliterate applies, in order: Unicode decomposition and combining-
// mark removal, punctuation removal, quote/dash substitution,
// script-to-Latin transliteration for any remaining non-Latin script,
// and case folding to lower. The result is idempotent: Transliterate(
// Transliterate(s)) == Transliterate(s).
func (t Transliterator) Transliterate(s string) string {
	decomposed := norm.NFD.String(s)
	stripped, _, err := transform.String(t.markRemover, decomposed)
	if err != nil {
		stripped = decomposed
	}
	stripped = norm.NFC.String(stripped)

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if t.rules.Punctuation[r] {
			continue
		}
		if repl, ok := t.rules.Quotes[r]; ok {
			b.WriteRune(repl)
			continue
		}
		if t.rules.Dashes[r] {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()

	if containsNonASCII(out) {
		out = unidecode.Unidecode(out)
	}

	return strings.ToLower(out)
}

// Tokenize transliterates s and splits it on whitespace, discarding
// empty words, producing the ordered word sequence used by the
// partitioner and the matcher.
func (t Transliterator) Tokenize(s string) []string {
	return strings.Fields(t.Transliterate(s))
}

func containsNonASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return true
		}
	}
	return false
}
