package standings

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collationLanguage pins the name tiebreak so ordering does not depend on the
// host locale.
var collationLanguage = language.Slovenian

// Comparator orders entries best first. A Comparator holds a collator and is
// not safe for concurrent use; create one per goroutine.
type Comparator struct {
	collator *collate.Collator
}

// NewComparator returns a Comparator with Slovenian name collation.
func NewComparator() *Comparator {
	return &Comparator{collator: collate.New(collationLanguage)}
}

// Compare returns a negative number when a ranks ahead of b, a positive
// number when b ranks ahead of a and zero when they are indistinguishable.
func (c *Comparator) Compare(a, b Entry) int {
	if d := cmp.Compare(Aggregate(b), Aggregate(a)); d != 0 {
		return d
	}

	za, zb := ZoneCounts(a), ZoneCounts(b)
	for i := range za {
		if d := cmp.Compare(zb[i], za[i]); d != 0 {
			return d
		}
	}

	return c.collator.CompareString(a.FirstName, b.FirstName)
}

// Sort returns a copy of entries in standings order. Entries that compare
// equal keep their input order.
func Sort(entries []Entry) []Entry {
	sorted := slices.Clone(entries)
	c := NewComparator()
	slices.SortStableFunc(sorted, c.Compare)
	return sorted
}
