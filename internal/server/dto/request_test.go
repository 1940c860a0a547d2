package dto

import (
	"errors"
	"testing"
)

func TestQueryRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     QueryRequest
		wantErr bool
	}{
		{"minimal valid", QueryRequest{DatabaseID: "db1"}, false},
		{"missing database id", QueryRequest{}, true},
		{"valid card view", QueryRequest{DatabaseID: "db1", View: "card"}, false},
		{"invalid view", QueryRequest{DatabaseID: "db1", View: "kanban"}, true},
		{
			"valid sort",
			QueryRequest{DatabaseID: "db1", Sorts: []SortSpec{{Property: "Due", Direction: "ascending"}}},
			false,
		},
		{
			"bad direction",
			QueryRequest{DatabaseID: "db1", Sorts: []SortSpec{{Property: "Due", Direction: "up"}}},
			true,
		},
		{
			"sort without target",
			QueryRequest{DatabaseID: "db1", Sorts: []SortSpec{{Direction: "ascending"}}},
			true,
		},
		{
			"timestamp sort",
			QueryRequest{DatabaseID: "db1", Sorts: []SortSpec{{Timestamp: "created_time", Direction: "descending"}}},
			false,
		},
		{
			"valid filter",
			QueryRequest{DatabaseID: "db1", Filters: []FilterSpec{{PropertyName: "Status", PropertyType: "status", Values: []string{"Done"}}}},
			false,
		},
		{
			"filter without property name",
			QueryRequest{DatabaseID: "db1", Filters: []FilterSpec{{PropertyType: "status"}}},
			true,
		},
		{
			"unsupported filter type",
			QueryRequest{DatabaseID: "db1", Filters: []FilterSpec{{PropertyName: "X", PropertyType: "rich_text"}}},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCycleStatusRequestValidate(t *testing.T) {
	valid := CycleStatusRequest{RecordID: "r1", DatabaseID: "db1", Property: "Status"}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	for _, tt := range []struct {
		name string
		req  CycleStatusRequest
	}{
		{"missing record", CycleStatusRequest{DatabaseID: "db1", Property: "Status"}},
		{"missing database", CycleStatusRequest{RecordID: "r1", Property: "Status"}},
		{"missing property", CycleStatusRequest{RecordID: "r1", DatabaseID: "db1"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestPageTitlesRequestValidate(t *testing.T) {
	t.Run("valid batch", func(t *testing.T) {
		req := PageTitlesRequest{IDs: []string{"p1", "p2"}}
		if err := req.Validate(); err != nil {
			t.Errorf("Validate: %v", err)
		}
	})
	t.Run("empty batch", func(t *testing.T) {
		if err := (&PageTitlesRequest{}).Validate(); err == nil {
			t.Error("expected validation error")
		}
	})
	t.Run("empty id entry", func(t *testing.T) {
		req := PageTitlesRequest{IDs: []string{"p1", ""}}
		if err := req.Validate(); err == nil {
			t.Error("expected validation error")
		}
	})
	t.Run("oversized batch", func(t *testing.T) {
		req := PageTitlesRequest{IDs: make([]string, maxTitleBatch+1)}
		for i := range req.IDs {
			req.IDs[i] = "p"
		}
		if err := req.Validate(); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestUpdateDatabaseSettingsRequestValidate(t *testing.T) {
	valid := UpdateDatabaseSettingsRequest{DatabaseID: "db1", VisibleProperties: []string{"Status"}}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	if err := (&UpdateDatabaseSettingsRequest{}).Validate(); err == nil {
		t.Error("expected validation error for missing database id")
	}
}

func TestUpdateSettingsRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := UpdateSettingsRequest{
			Databases: []DatabaseConfigDTO{{ID: "db1", Name: "Tasks", ViewType: "list"}},
			Widgets:   []WidgetConfigDTO{{Name: "W", URL: "https://w.example"}},
		}
		if err := req.Validate(); err != nil {
			t.Errorf("Validate: %v", err)
		}
	})
	t.Run("database without id", func(t *testing.T) {
		req := UpdateSettingsRequest{Databases: []DatabaseConfigDTO{{Name: "Tasks"}}}
		if err := req.Validate(); err == nil {
			t.Error("expected validation error")
		}
	})
	t.Run("bad view type", func(t *testing.T) {
		req := UpdateSettingsRequest{Databases: []DatabaseConfigDTO{{ID: "db1", ViewType: "grid"}}}
		if err := req.Validate(); err == nil {
			t.Error("expected validation error")
		}
	})
	t.Run("widget without url", func(t *testing.T) {
		req := UpdateSettingsRequest{Widgets: []WidgetConfigDTO{{Name: "W"}}}
		if err := req.Validate(); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestAPIError(t *testing.T) {
	t.Run("status codes", func(t *testing.T) {
		if got := NotFound("record").StatusCode(); got != 404 {
			t.Errorf("NotFound status = %d", got)
		}
		if got := Unauthorized("no credential").StatusCode(); got != 401 {
			t.Errorf("Unauthorized status = %d", got)
		}
		if got := RateLimitExceeded(5).StatusCode(); got != 429 {
			t.Errorf("RateLimitExceeded status = %d", got)
		}
	})
	t.Run("upstream keeps status in range", func(t *testing.T) {
		if got := Upstream(401, "bad token").StatusCode(); got != 401 {
			t.Errorf("Upstream(401) status = %d", got)
		}
		if got := Upstream(0, "weird").StatusCode(); got != 502 {
			t.Errorf("Upstream(0) status = %d, want 502", got)
		}
	})
	t.Run("wrap preserves chain", func(t *testing.T) {
		inner := errors.New("disk full")
		err := InternalWithError("failed to save settings", inner)
		if !errors.Is(err, inner) {
			t.Error("wrapped error lost")
		}
		if err.Error() != "failed to save settings: disk full" {
			t.Errorf("Error() = %q", err.Error())
		}
	})
}
