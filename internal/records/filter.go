// Implements per-property structured filters.

package records

import (
	"slices"
	"time"

	"github.com/notiondash/notiondash/internal/notion"
)

// Date filter conditions.
const (
	DateToday     = "today"
	DateThisWeek  = "this_week"
	DateThisMonth = "this_month"
	DatePast      = "past"
	DateFuture    = "future"
)

// Checkbox filter conditions.
const (
	CheckboxChecked   = "checked"
	CheckboxUnchecked = "unchecked"
)

// PropertyFilter is one user-configured filter. At most one filter exists
// per property name; the list combines with logical AND.
type PropertyFilter struct {
	PropertyName string   `json:"propertyName"`
	PropertyType string   `json:"propertyType"` // date, select, multi_select, status, checkbox
	Condition    string   `json:"condition,omitempty"`
	Values       []string `json:"values,omitempty"`
}

// restrictive reports whether the filter actually constrains records.
// Select-family filters with no values and date/checkbox filters with no
// condition impose no restriction.
func (f *PropertyFilter) restrictive() bool {
	switch f.PropertyType {
	case "select", "multi_select", "status":
		return len(f.Values) > 0
	default:
		return f.Condition != ""
	}
}

// MatchesFilters evaluates all filters against a record, AND-combined.
// An empty filter list matches everything. Date buckets are computed
// relative to now's local calendar day.
func MatchesFilters(p *notion.Page, filters []PropertyFilter, now time.Time) bool {
	for i := range filters {
		if !matchesFilter(p, &filters[i], now) {
			return false
		}
	}
	return true
}

func matchesFilter(p *notion.Page, f *PropertyFilter, now time.Time) bool {
	if !f.restrictive() {
		return true
	}
	pv, ok := p.Properties[f.PropertyName]
	if !ok {
		return false
	}

	switch f.PropertyType {
	case "date":
		return matchesDate(&pv, f.Condition, now)
	case "select":
		return pv.Select != nil && slices.Contains(f.Values, pv.Select.Name)
	case "status":
		return pv.Status != nil && slices.Contains(f.Values, pv.Status.Name)
	case "multi_select":
		for _, opt := range pv.MultiSelect {
			if slices.Contains(f.Values, opt.Name) {
				return true
			}
		}
		return false
	case "checkbox":
		if pv.Checkbox == nil {
			return false
		}
		switch f.Condition {
		case CheckboxChecked:
			return *pv.Checkbox
		case CheckboxUnchecked:
			return !*pv.Checkbox
		}
		return true
	}
	return false
}

// matchesDate buckets the property's start date against the condition.
// A record without a date value never matches, whatever the condition.
func matchesDate(pv *notion.PropertyValue, condition string, now time.Time) bool {
	if pv.Date == nil || pv.Date.Start == "" {
		return false
	}
	start, ok := parseDateStart(pv.Date.Start)
	if !ok {
		return false
	}

	day := localDay(start)
	today := localDay(now)

	switch condition {
	case DateToday:
		return day.Equal(today)
	case DateThisWeek:
		weekStart := today.AddDate(0, 0, -int(today.Weekday()))
		return !day.Before(weekStart) && day.Before(weekStart.AddDate(0, 0, 7))
	case DateThisMonth:
		return day.Year() == today.Year() && day.Month() == today.Month()
	case DatePast:
		return day.Before(today)
	case DateFuture:
		return day.After(today)
	}
	return false
}

// localDay truncates a time to local midnight.
func localDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// Filter returns the records matching all filters, preserving order.
func Filter(pages []notion.Page, filters []PropertyFilter, now time.Time) []notion.Page {
	if len(filters) == 0 {
		return pages
	}
	out := make([]notion.Page, 0, len(pages))
	for i := range pages {
		if MatchesFilters(&pages[i], filters, now) {
			out = append(out, pages[i])
		}
	}
	return out
}
