// Implements the status-cycle mutation flow.

package records

import (
	"slices"

	"github.com/notiondash/notiondash/internal/notion"
)

// StatusOptions returns the distinct status names observed for the named
// property across the collection, in first-seen record order. The status
// domain is never cached: it is recomputed from the loaded records on
// every cycle, so it tracks whatever the current fetch contains.
func StatusOptions(pages []notion.Page, property string) []string {
	var options []string
	for i := range pages {
		pv, ok := pages[i].Properties[property]
		if !ok || pv.Type != "status" || pv.Status == nil || pv.Status.Name == "" {
			continue
		}
		if !slices.Contains(options, pv.Status.Name) {
			options = append(options, pv.Status.Name)
		}
	}
	return options
}

// NextStatus returns the status following current in the observed option
// order, wrapping at the end. A current value not in the set advances to
// the first option. Domains of size zero or one cannot cycle; ok is false
// and the value must be left unchanged.
func NextStatus(options []string, current string) (string, bool) {
	if len(options) <= 1 {
		return "", false
	}
	i := slices.Index(options, current)
	return options[(i+1)%len(options)], true
}
