package records

import (
	"slices"
	"testing"

	"github.com/notiondash/notiondash/internal/notion"
)

func statusPage(id, status string) notion.Page {
	pv := notion.PropertyValue{Type: "status"}
	if status != "" {
		pv.Status = &notion.SelectValue{Name: status}
	}
	return notion.Page{ID: id, Properties: map[string]notion.PropertyValue{"Status": pv}}
}

func TestStatusOptions(t *testing.T) {
	t.Run("first seen order, deduplicated", func(t *testing.T) {
		pages := []notion.Page{
			statusPage("1", "Todo"),
			statusPage("2", "Doing"),
			statusPage("3", "Todo"),
			statusPage("4", "Done"),
		}
		got := StatusOptions(pages, "Status")
		want := []string{"Todo", "Doing", "Done"}
		if !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})
	t.Run("skips empty and missing values", func(t *testing.T) {
		pages := []notion.Page{
			statusPage("1", ""),
			{ID: "2", Properties: map[string]notion.PropertyValue{}},
			statusPage("3", "Done"),
		}
		got := StatusOptions(pages, "Status")
		if !slices.Equal(got, []string{"Done"}) {
			t.Errorf("got %v, want [Done]", got)
		}
	})
	t.Run("ignores non-status properties", func(t *testing.T) {
		pages := []notion.Page{
			{ID: "1", Properties: map[string]notion.PropertyValue{
				"Status": {Type: "select", Select: &notion.SelectValue{Name: "NotAStatus"}},
			}},
		}
		if got := StatusOptions(pages, "Status"); len(got) != 0 {
			t.Errorf("got %v, want empty", got)
		}
	})
}

func TestNextStatus(t *testing.T) {
	options := []string{"Todo", "Doing", "Done"}

	tests := []struct {
		name    string
		current string
		want    string
		wantOK  bool
	}{
		{"advances", "Todo", "Doing", true},
		{"wraps at end", "Done", "Todo", true},
		{"unknown current goes to first", "Archived", "Todo", true},
		{"empty current goes to first", "", "Todo", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextStatus(options, tt.current)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NextStatus(%q) = (%q, %v), want (%q, %v)", tt.current, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	t.Run("single option cannot cycle", func(t *testing.T) {
		if _, ok := NextStatus([]string{"Only"}, "Only"); ok {
			t.Error("single-option domain should not cycle")
		}
	})
	t.Run("empty domain cannot cycle", func(t *testing.T) {
		if _, ok := NextStatus(nil, "Todo"); ok {
			t.Error("empty domain should not cycle")
		}
	})
}
