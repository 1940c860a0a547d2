// Package records implements the record pipeline: typed property
// rendering, structured filters, free-text search, stable sorting, view
// projection, and the status-cycle mutation flow.
//
// All pipeline functions are pure over their inputs; the only mutable
// state lives in Collection.
package records

import (
	"strconv"
	"strings"
	"time"

	"github.com/notiondash/notiondash/internal/notion"
)

// Untitled is the canonical display name for a record with no title text.
const Untitled = "Untitled"

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Title returns the record's canonical display name: the concatenated
// plain text of its title property, or Untitled.
func Title(p *notion.Page) string {
	for name := range p.Properties {
		pv := p.Properties[name]
		if pv.Type == "title" {
			if t := notion.PlainText(pv.Title); t != "" {
				return t
			}
			return Untitled
		}
	}
	return Untitled
}

// DisplayValue renders a property to its display string. The second
// return is false when the property has no visible value (nil select,
// empty text, unsupported type) and should be skipped by projection.
//
// Every tag is handled; the default arm is the deliberate "unsupported"
// case, not an accident.
func DisplayValue(pv *notion.PropertyValue) (string, bool) {
	switch pv.Type {
	case "title":
		t := notion.PlainText(pv.Title)
		return t, t != ""
	case "rich_text":
		t := notion.PlainText(pv.RichText)
		return t, t != ""
	case "number":
		if pv.Number == nil {
			return "", false
		}
		return formatNumber(*pv.Number), true
	case "select":
		if pv.Select == nil {
			return "", false
		}
		return pv.Select.Name, true
	case "multi_select":
		if len(pv.MultiSelect) == 0 {
			return "", false
		}
		names := make([]string, len(pv.MultiSelect))
		for i, opt := range pv.MultiSelect {
			names[i] = opt.Name
		}
		return strings.Join(names, ", "), true
	case "status":
		if pv.Status == nil {
			return "", false
		}
		return pv.Status.Name, true
	case "date":
		if pv.Date == nil || pv.Date.Start == "" {
			return "", false
		}
		if pv.Date.End != nil && *pv.Date.End != "" {
			return pv.Date.Start + " → " + *pv.Date.End, true
		}
		return pv.Date.Start, true
	case "checkbox":
		if pv.Checkbox == nil {
			return "", false
		}
		if *pv.Checkbox {
			return "Yes", true
		}
		return "No", true
	case "url":
		if pv.URL == nil || *pv.URL == "" {
			return "", false
		}
		return *pv.URL, true
	case "email":
		if pv.Email == nil || *pv.Email == "" {
			return "", false
		}
		return *pv.Email, true
	case "phone_number":
		if pv.PhoneNumber == nil || *pv.PhoneNumber == "" {
			return "", false
		}
		return *pv.PhoneNumber, true
	case "relation":
		n := len(pv.Relation)
		if n == 0 {
			return "", false
		}
		if n == 1 {
			return "1 link", true
		}
		return strconv.Itoa(n) + " links", true
	case "people":
		if len(pv.People) == 0 {
			return "", false
		}
		names := make([]string, 0, len(pv.People))
		for _, person := range pv.People {
			if person.Name != "" {
				names = append(names, person.Name)
			}
		}
		if len(names) == 0 {
			return "", false
		}
		return strings.Join(names, ", "), true
	case "files":
		if len(pv.Files) == 0 {
			return "", false
		}
		names := make([]string, len(pv.Files))
		for i, f := range pv.Files {
			names[i] = f.Name
		}
		return strings.Join(names, ", "), true
	case "formula":
		return formulaDisplay(pv.Formula)
	case "rollup":
		return rollupDisplay(pv.Rollup)
	case "created_time":
		if pv.CreatedTime == nil {
			return "", false
		}
		return pv.CreatedTime.Format(time.RFC3339), true
	case "last_edited_time":
		if pv.LastEditedTime == nil {
			return "", false
		}
		return pv.LastEditedTime.Format(time.RFC3339), true
	default:
		// Unsupported tag: render nothing rather than failing the record.
		return "", false
	}
}

func formulaDisplay(f *notion.FormulaValue) (string, bool) {
	if f == nil {
		return "", false
	}
	switch f.Type {
	case "string":
		if f.String == nil || *f.String == "" {
			return "", false
		}
		return *f.String, true
	case "number":
		if f.Number == nil {
			return "", false
		}
		return formatNumber(*f.Number), true
	case "boolean":
		if f.Boolean == nil {
			return "", false
		}
		if *f.Boolean {
			return "Yes", true
		}
		return "No", true
	case "date":
		if f.Date == nil || f.Date.Start == "" {
			return "", false
		}
		return f.Date.Start, true
	}
	return "", false
}

func rollupDisplay(r *notion.RollupValue) (string, bool) {
	if r == nil {
		return "", false
	}
	switch r.Type {
	case "number":
		if r.Number == nil {
			return "", false
		}
		return formatNumber(*r.Number), true
	case "date":
		if r.Date == nil || r.Date.Start == "" {
			return "", false
		}
		return r.Date.Start, true
	case "array":
		n := len(r.Array)
		if n == 0 {
			return "", false
		}
		return strconv.Itoa(n) + " items", true
	}
	return "", false
}

// SearchText returns the property's lower-cased contribution to free-text
// search, or false for property kinds that are not searched (relation,
// people, files, formula, rollup, timestamps).
func SearchText(pv *notion.PropertyValue) (string, bool) {
	switch pv.Type {
	case "title":
		return strings.ToLower(notion.PlainText(pv.Title)), true
	case "rich_text":
		return strings.ToLower(notion.PlainText(pv.RichText)), true
	case "number":
		if pv.Number == nil {
			return "", false
		}
		return formatNumber(*pv.Number), true
	case "select":
		if pv.Select == nil {
			return "", false
		}
		return strings.ToLower(pv.Select.Name), true
	case "multi_select":
		if len(pv.MultiSelect) == 0 {
			return "", false
		}
		names := make([]string, len(pv.MultiSelect))
		for i, opt := range pv.MultiSelect {
			names[i] = strings.ToLower(opt.Name)
		}
		return strings.Join(names, " "), true
	case "status":
		if pv.Status == nil {
			return "", false
		}
		return strings.ToLower(pv.Status.Name), true
	case "url":
		if pv.URL == nil {
			return "", false
		}
		return strings.ToLower(*pv.URL), true
	case "email":
		if pv.Email == nil {
			return "", false
		}
		return strings.ToLower(*pv.Email), true
	case "phone_number":
		if pv.PhoneNumber == nil {
			return "", false
		}
		return strings.ToLower(*pv.PhoneNumber), true
	default:
		return "", false
	}
}

// keyKind orders heterogeneous sort keys: numeric keys sort before string
// keys, absent keys sort after everything.
type keyKind int

const (
	kindNumber keyKind = iota
	kindString
	kindAbsent
)

// SortKey is a comparison key extracted from a property. Numeric and date
// values compare as real numbers, string values compare case-sensitively.
type SortKey struct {
	kind keyKind
	num  float64
	str  string
}

// AbsentKey is the key for records missing the sorted property; it sorts
// after all present values regardless of direction.
func AbsentKey() SortKey {
	return SortKey{kind: kindAbsent}
}

func numberKey(n float64) SortKey { return SortKey{kind: kindNumber, num: n} }
func stringKey(s string) SortKey  { return SortKey{kind: kindString, str: s} }
func timeKey(t time.Time) SortKey {
	return SortKey{kind: kindNumber, num: float64(t.UnixMilli())}
}

// Compare returns -1, 0, or 1. Absent keys compare after present ones;
// mixed-kind comparisons put numeric keys first.
func (k SortKey) Compare(o SortKey) int {
	if k.kind != o.kind {
		if k.kind < o.kind {
			return -1
		}
		return 1
	}
	switch k.kind {
	case kindNumber:
		switch {
		case k.num < o.num:
			return -1
		case k.num > o.num:
			return 1
		}
		return 0
	case kindString:
		return strings.Compare(k.str, o.str)
	}
	return 0
}

// Absent reports whether the key represents a missing value.
func (k SortKey) Absent() bool { return k.kind == kindAbsent }

// PropertySortKey extracts the comparison key for sorting by this property.
func PropertySortKey(pv *notion.PropertyValue) SortKey {
	switch pv.Type {
	case "title":
		if t := notion.PlainText(pv.Title); t != "" {
			return stringKey(t)
		}
	case "rich_text":
		if t := notion.PlainText(pv.RichText); t != "" {
			return stringKey(t)
		}
	case "number":
		if pv.Number != nil {
			return numberKey(*pv.Number)
		}
	case "select":
		if pv.Select != nil {
			return stringKey(pv.Select.Name)
		}
	case "status":
		if pv.Status != nil {
			return stringKey(pv.Status.Name)
		}
	case "date":
		if pv.Date != nil && pv.Date.Start != "" {
			if t, ok := parseDateStart(pv.Date.Start); ok {
				return timeKey(t)
			}
		}
	case "checkbox":
		if pv.Checkbox != nil {
			if *pv.Checkbox {
				return numberKey(1)
			}
			return numberKey(0)
		}
	case "url":
		if pv.URL != nil {
			return stringKey(*pv.URL)
		}
	case "email":
		if pv.Email != nil {
			return stringKey(*pv.Email)
		}
	case "phone_number":
		if pv.PhoneNumber != nil {
			return stringKey(*pv.PhoneNumber)
		}
	case "created_time":
		if pv.CreatedTime != nil {
			return timeKey(*pv.CreatedTime)
		}
	case "last_edited_time":
		if pv.LastEditedTime != nil {
			return timeKey(*pv.LastEditedTime)
		}
	}
	return AbsentKey()
}

// parseDateStart parses a Notion date start value, which is either a bare
// date or an RFC3339 timestamp.
func parseDateStart(s string) (time.Time, bool) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
