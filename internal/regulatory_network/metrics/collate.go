package metrics

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Display names are ordered with a locale-aware collator rather than byte order. A
// Collator is not safe for concurrent use, so callers create their own.
func newCollator() *collate.Collator {
	return collate.New(language.Und)
}

func sortStrings(s []string) {
	newCollator().SortStrings(s)
}
