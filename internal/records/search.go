// Implements free-text search over record properties.

package records

import (
	"strings"

	"github.com/notiondash/notiondash/internal/notion"
)

// MatchesQuery reports whether any searchable property of the record
// contains the query as a case-insensitive substring. An empty query
// matches everything.
func MatchesQuery(p *notion.Page, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for name := range p.Properties {
		pv := p.Properties[name]
		if text, ok := SearchText(&pv); ok && strings.Contains(text, q) {
			return true
		}
	}
	return false
}

// Search returns the records matching the query, preserving order.
func Search(pages []notion.Page, query string) []notion.Page {
	if query == "" {
		return pages
	}
	out := make([]notion.Page, 0, len(pages))
	for i := range pages {
		if MatchesQuery(&pages[i], query) {
			out = append(out, pages[i])
		}
	}
	return out
}
