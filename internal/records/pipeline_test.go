package records

import (
	"testing"
	"time"

	"github.com/notiondash/notiondash/internal/notion"
)

// End-to-end checks over the whole pipeline, mirroring how a dashboard
// query flows through filter, search, and the status cycle.

func TestPipelineSelectFilter(t *testing.T) {
	mk := func(id, priority string) notion.Page {
		return notion.Page{ID: id, Properties: map[string]notion.PropertyValue{
			"Priority": {Type: "select", Select: &notion.SelectValue{Name: priority}},
		}}
	}
	pages := []notion.Page{mk("1", "High"), mk("2", "Low"), mk("3", "High")}
	got := Filter(pages, []PropertyFilter{
		{PropertyName: "Priority", PropertyType: "select", Values: []string{"High"}},
	}, time.Now())
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("got %v, want [1 3]", ids(got))
	}
}

func TestPipelineDatePastFilter(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	pages := []notion.Page{
		datePage("past", "2024-01-01"),
		datePage("today", "2024-06-01"),
		datePage("future", "2024-12-31"),
	}
	got := Filter(pages, []PropertyFilter{
		{PropertyName: "Due", PropertyType: "date", Condition: DatePast},
	}, now)
	if len(got) != 1 || got[0].ID != "past" {
		t.Errorf("got %v, want [past]", ids(got))
	}
}

func TestPipelineStatusCycleTwice(t *testing.T) {
	c := loadedCollection(t,
		statusPage("r1", "Todo"),
		statusPage("r2", "Doing"),
		statusPage("r3", "Done"),
	)
	next, err := c.CycleStatus("r2", "Status")
	if err != nil {
		t.Fatalf("first cycle: %v", err)
	}
	if next != "Done" {
		t.Errorf("first cycle = %q, want Done", next)
	}
	next, err = c.CycleStatus("r2", "Status")
	if err != nil {
		t.Fatalf("second cycle: %v", err)
	}
	if next != "Todo" {
		t.Errorf("second cycle = %q, want Todo (wrap)", next)
	}
}

func TestPipelineSearchAcrossKinds(t *testing.T) {
	pages := []notion.Page{
		{ID: "title-hit", Properties: map[string]notion.PropertyValue{
			"Name": {Type: "title", Title: textSpans("My Project")},
		}},
		{ID: "tag-hit", Properties: map[string]notion.PropertyValue{
			"Tags": {Type: "multi_select", MultiSelect: []notion.SelectValue{{Name: "Project-X"}}},
		}},
		{ID: "miss", Properties: map[string]notion.PropertyValue{
			"Name": {Type: "title", Title: textSpans("Personal")},
		}},
	}
	got := Search(pages, "proj")
	if len(got) != 2 || got[0].ID != "title-hit" || got[1].ID != "tag-hit" {
		t.Errorf("got %v, want [title-hit tag-hit]", ids(got))
	}
}
