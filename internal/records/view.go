// Implements view projection: reducing records to their visible,
// non-empty property values.

package records

import (
	"log/slog"

	"github.com/notiondash/notiondash/internal/notion"
)

// ViewMode selects the layout a projection feeds.
type ViewMode string

// Supported view modes.
const (
	ViewCard ViewMode = "card"
	ViewList ViewMode = "list"
)

// RenderErrorPlaceholder replaces a property value whose rendering
// failed; the rest of the record is unaffected.
const RenderErrorPlaceholder = "error rendering this property"

// Pair is one projected (property name, rendered value) entry.
type Pair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Projected is one record reduced to its renderable parts.
type Projected struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	IconEmoji  string `json:"iconEmoji,omitempty"`
	CoverURL   string `json:"coverUrl,omitempty"`
	Properties []Pair `json:"properties"`
}

// Project reduces each record to an ordered list of visible property
// pairs. The caller-supplied property order is preserved exactly; the
// title property and properties with no visible value are skipped. Card
// mode additionally carries the cover image reference.
func Project(pages []notion.Page, visible []string, mode ViewMode) []Projected {
	out := make([]Projected, 0, len(pages))
	for i := range pages {
		out = append(out, projectPage(&pages[i], visible, mode))
	}
	return out
}

func projectPage(p *notion.Page, visible []string, mode ViewMode) Projected {
	proj := Projected{
		ID:    p.ID,
		URL:   p.URL,
		Title: Title(p),
	}
	if p.Icon != nil && p.Icon.Type == "emoji" {
		proj.IconEmoji = p.Icon.Emoji
	}
	if mode == ViewCard {
		proj.CoverURL = coverURL(p)
	}
	for _, name := range visible {
		pv, ok := p.Properties[name]
		if !ok || pv.Type == "title" {
			continue
		}
		value, ok := renderValue(p.ID, name, &pv)
		if !ok {
			continue
		}
		proj.Properties = append(proj.Properties, Pair{Name: name, Value: value})
	}
	return proj
}

// renderValue wraps DisplayValue so a malformed payload poisons only this
// property, never the sibling properties or records.
func renderValue(pageID, name string, pv *notion.PropertyValue) (value string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Property render failed", "page", pageID, "property", name, "panic", r)
			value, ok = RenderErrorPlaceholder, true
		}
	}()
	return DisplayValue(pv)
}

func coverURL(p *notion.Page) string {
	if p.Cover == nil {
		return ""
	}
	switch p.Cover.Type {
	case "external":
		if p.Cover.External != nil {
			return p.Cover.External.URL
		}
	case "file":
		if p.Cover.File != nil {
			return p.Cover.File.URL
		}
	}
	return ""
}
