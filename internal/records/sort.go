// Implements stable sorting of record collections.

package records

import (
	"slices"

	"github.com/notiondash/notiondash/internal/notion"
)

// CreatedTimeKey is the reserved sort property that orders records by
// their creation instant rather than a named property.
const CreatedTimeKey = "created_time"

// Direction of a sort.
type Direction string

// Sort directions, matching the upstream API's vocabulary.
const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// Sort orders records by the named property (or CreatedTimeKey) and
// direction. The sort is stable, and records missing the property sort
// after all present values regardless of direction.
func Sort(pages []notion.Page, property string, dir Direction) {
	keys := make([]SortKey, len(pages))
	for i := range pages {
		keys[i] = sortKeyFor(&pages[i], property)
	}
	idx := make([]int, len(pages))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		ka, kb := keys[a], keys[b]
		// Absent values stay last even when descending.
		if ka.Absent() || kb.Absent() {
			return ka.Compare(kb)
		}
		c := ka.Compare(kb)
		if dir == Descending {
			return -c
		}
		return c
	})
	sorted := make([]notion.Page, len(pages))
	for i, j := range idx {
		sorted[i] = pages[j]
	}
	copy(pages, sorted)
}

func sortKeyFor(p *notion.Page, property string) SortKey {
	if property == CreatedTimeKey {
		return timeKey(p.CreatedTime)
	}
	pv, ok := p.Properties[property]
	if !ok {
		return AbsentKey()
	}
	return PropertySortKey(&pv)
}
