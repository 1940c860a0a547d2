package notion

import (
	"encoding/json"
	"testing"
)

func TestNormalizeDatabaseID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare id", "1429989fe8ac4effbc8f57f56486db54", "1429989fe8ac4effbc8f57f56486db54"},
		{"dashed uuid", "1429989f-e8ac-4eff-bc8f-57f56486db54", "1429989fe8ac4effbc8f57f56486db54"},
		{
			"full url",
			"https://www.notion.so/myworkspace/Tasks-1429989fe8ac4effbc8f57f56486db54",
			"1429989fe8ac4effbc8f57f56486db54",
		},
		{
			"url with view query",
			"https://www.notion.so/myworkspace/1429989fe8ac4effbc8f57f56486db54?v=abc123",
			"1429989fe8ac4effbc8f57f56486db54",
		},
		{"uppercase hex", "1429989FE8AC4EFFBC8F57F56486DB54", "1429989FE8AC4EFFBC8F57F56486DB54"},
		{"not an id", "shortstring", "shortstring"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDatabaseID(tt.in); got != tt.want {
				t.Errorf("NormalizeDatabaseID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWithToken(t *testing.T) {
	base := NewClient("tok-a")
	derived := base.WithToken("tok-b")
	if derived == base {
		t.Fatal("different token should return a new client")
	}
	if derived.limiter != base.limiter {
		t.Error("derived client should share the rate limiter")
	}
	if derived.httpClient != base.httpClient {
		t.Error("derived client should share the HTTP client")
	}
	if base.WithToken("tok-a") != base {
		t.Error("same token should return the same client")
	}
}

func TestPageUnmarshal(t *testing.T) {
	// Trimmed from a real API response.
	raw := `{
		"object": "page",
		"id": "59833787-2cf9-4fdf-8782-e53db20768a5",
		"created_time": "2022-03-01T19:05:00.000Z",
		"url": "https://www.notion.so/Tuscan-Kale-598337872cf94fdf8782e53db20768a5",
		"icon": {"type": "emoji", "emoji": "🥬"},
		"cover": {"type": "external", "external": {"url": "https://img.example/kale.jpg"}},
		"properties": {
			"Name": {"id": "title", "type": "title", "title": [{"type": "text", "plain_text": "Tuscan Kale"}]},
			"Price": {"id": "a1", "type": "number", "number": 2.5},
			"Status": {"id": "b2", "type": "status", "status": {"id": "s1", "name": "Ready", "color": "green"}},
			"Mystery": {"id": "c3", "type": "verification"}
		}
	}`
	var page Page
	if err := json.Unmarshal([]byte(raw), &page); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if page.Properties["Name"].Title[0].PlainText != "Tuscan Kale" {
		t.Errorf("title = %+v", page.Properties["Name"].Title)
	}
	if n := page.Properties["Price"].Number; n == nil || *n != 2.5 {
		t.Errorf("number = %v", n)
	}
	if s := page.Properties["Status"].Status; s == nil || s.Name != "Ready" {
		t.Errorf("status = %+v", s)
	}
	if page.Cover == nil || page.Cover.External == nil || page.Cover.External.URL != "https://img.example/kale.jpg" {
		t.Errorf("cover = %+v", page.Cover)
	}
	// Unknown tag leaves every payload nil; that is the contract.
	mystery := page.Properties["Mystery"]
	if mystery.Type != "verification" || mystery.Select != nil || mystery.RichText != nil {
		t.Errorf("unknown tag mishandled: %+v", mystery)
	}
}
