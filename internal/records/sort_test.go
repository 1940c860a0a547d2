package records

import (
	"testing"
	"time"

	"github.com/notiondash/notiondash/internal/notion"
)

func numberPage(id string, n *float64) notion.Page {
	pv := notion.PropertyValue{Type: "number", Number: n}
	return notion.Page{ID: id, Properties: map[string]notion.PropertyValue{"Score": pv}}
}

func TestSort(t *testing.T) {
	t.Run("ascending numbers", func(t *testing.T) {
		pages := []notion.Page{
			numberPage("b", numPtr(10)),
			numberPage("a", numPtr(2)),
			numberPage("c", numPtr(30)),
		}
		Sort(pages, "Score", Ascending)
		want := []string{"a", "b", "c"}
		for i, id := range want {
			if pages[i].ID != id {
				t.Fatalf("got %v, want %v", ids(pages), want)
			}
		}
	})

	t.Run("descending numbers", func(t *testing.T) {
		pages := []notion.Page{
			numberPage("b", numPtr(10)),
			numberPage("a", numPtr(2)),
			numberPage("c", numPtr(30)),
		}
		Sort(pages, "Score", Descending)
		want := []string{"c", "b", "a"}
		for i, id := range want {
			if pages[i].ID != id {
				t.Fatalf("got %v, want %v", ids(pages), want)
			}
		}
	})

	t.Run("absent sorts last in both directions", func(t *testing.T) {
		for _, dir := range []Direction{Ascending, Descending} {
			pages := []notion.Page{
				numberPage("missing", nil),
				numberPage("present", numPtr(5)),
			}
			Sort(pages, "Score", dir)
			if pages[1].ID != "missing" {
				t.Errorf("%s: absent record should sort last, got %v", dir, ids(pages))
			}
		}
	})

	t.Run("stable among equal keys", func(t *testing.T) {
		pages := []notion.Page{
			numberPage("first", numPtr(1)),
			numberPage("second", numPtr(1)),
			numberPage("third", numPtr(1)),
		}
		Sort(pages, "Score", Descending)
		want := []string{"first", "second", "third"}
		for i, id := range want {
			if pages[i].ID != id {
				t.Fatalf("equal keys reordered: got %v", ids(pages))
			}
		}
	})

	t.Run("created_time uses page metadata", func(t *testing.T) {
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		pages := []notion.Page{
			{ID: "newer", CreatedTime: base.Add(time.Hour)},
			{ID: "older", CreatedTime: base},
		}
		Sort(pages, CreatedTimeKey, Ascending)
		if pages[0].ID != "older" {
			t.Errorf("got %v, want [older newer]", ids(pages))
		}
		Sort(pages, CreatedTimeKey, Descending)
		if pages[0].ID != "newer" {
			t.Errorf("got %v, want [newer older]", ids(pages))
		}
	})

	t.Run("dates sort chronologically", func(t *testing.T) {
		pages := []notion.Page{
			datePage("late", "2024-06-01"),
			datePage("early", "2024-01-15"),
			datePage("mid", "2024-03-13T09:00:00Z"),
		}
		Sort(pages, "Due", Ascending)
		want := []string{"early", "mid", "late"}
		for i, id := range want {
			if pages[i].ID != id {
				t.Fatalf("got %v, want %v", ids(pages), want)
			}
		}
	})

	t.Run("strings sort lexically", func(t *testing.T) {
		mk := func(id, name string) notion.Page {
			return notion.Page{ID: id, Properties: map[string]notion.PropertyValue{
				"Name": {Type: "rich_text", RichText: textSpans(name)},
			}}
		}
		pages := []notion.Page{mk("b", "banana"), mk("a", "apple")}
		Sort(pages, "Name", Ascending)
		if pages[0].ID != "a" {
			t.Errorf("got %v, want [a b]", ids(pages))
		}
	})
}
