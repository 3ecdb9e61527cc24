// Package normalize folds search terms into the canonical annotation keyword form
//
// Pipeline order
// 1 drop invalid UTF-8
// 2 Unicode NFKC
// 3 width fold fullwidth to ASCII
// 4 lowercase
// 5 drop format and non-space control runes
// 6 collapse whitespace runs to one space and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// transformers carry state, so each call takes its own chain from the pool
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			width.Fold,
			cases.Lower(language.Und),
			runes.Remove(runes.In(unicode.Cf)),
			runes.Remove(runes.Predicate(func(r rune) bool { return unicode.IsControl(r) && !unicode.IsSpace(r) })),
		)
	},
}

// Keyword returns the normalized form used as the annotation uniqueness and lookup key
// Keyword(Keyword(s)) == Keyword(s)
func Keyword(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// fall back to the minimal contract: trim and lowercase
		out = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(out), " ")
}

// Term trims a free text search term; blank terms become ""
func Term(s string) string { return strings.TrimSpace(s) }
