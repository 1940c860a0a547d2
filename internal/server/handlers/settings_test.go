package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/notiondash/notiondash/internal/notion"
	"github.com/notiondash/notiondash/internal/server/dto"
	"github.com/notiondash/notiondash/internal/storage"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	svc := &Services{
		Notion:   notion.NewClient(""),
		Settings: store,
	}
	return NewHandler(svc, "test")
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)
	resp, err := h.Health(context.Background(), &dto.HealthRequest{})
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if resp.Status != "ok" || resp.Version != "test" {
		t.Errorf("got %+v", resp)
	}
}

func TestSettingsHandlers(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()

	t.Run("empty settings", func(t *testing.T) {
		resp, err := h.GetSettings(ctx, &dto.GetSettingsRequest{})
		if err != nil {
			t.Fatalf("GetSettings: %v", err)
		}
		if resp.APIKeySet {
			t.Error("APIKeySet should be false before configuration")
		}
	})

	t.Run("update and read back", func(t *testing.T) {
		req := &dto.UpdateSettingsRequest{
			APIKey: "secret_abc",
			Databases: []dto.DatabaseConfigDTO{
				{ID: "db1", Name: "Tasks", ViewType: "list"},
			},
			Widgets: []dto.WidgetConfigDTO{{Name: "Weather", URL: "https://weather.example"}},
			DatabaseSettings: map[string]dto.DatabaseSettingsDTO{
				"db1": {VisibleProperties: []string{"Status"}},
			},
		}
		resp, err := h.UpdateSettings(ctx, req)
		if err != nil {
			t.Fatalf("UpdateSettings: %v", err)
		}
		if !resp.APIKeySet {
			t.Error("APIKeySet should be true after storing a key")
		}
		if len(resp.Databases) != 1 || resp.Databases[0].ViewType != "list" {
			t.Errorf("Databases = %+v", resp.Databases)
		}
		if len(resp.Widgets) != 1 || resp.Widgets[0].ID == "" {
			t.Errorf("widget should have an assigned ID: %+v", resp.Widgets)
		}
		if got := resp.DatabaseSettings["db1"].VisibleProperties; len(got) != 1 || got[0] != "Status" {
			t.Errorf("DatabaseSettings = %+v", resp.DatabaseSettings)
		}
	})

	t.Run("empty api key keeps stored credential", func(t *testing.T) {
		resp, err := h.UpdateSettings(ctx, &dto.UpdateSettingsRequest{})
		if err != nil {
			t.Fatalf("UpdateSettings: %v", err)
		}
		if !resp.APIKeySet {
			t.Error("stored credential should survive an update without apiKey")
		}
	})
}

func TestUpdateDatabaseSettingsHandler(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()

	if _, err := h.UpdateDatabaseSettings(ctx, &dto.UpdateDatabaseSettingsRequest{
		DatabaseID:        "db1",
		VisibleProperties: []string{"Status", "Due"},
	}); err != nil {
		t.Fatalf("UpdateDatabaseSettings: %v", err)
	}

	t.Run("merge keeps the other list", func(t *testing.T) {
		resp, err := h.UpdateDatabaseSettings(ctx, &dto.UpdateDatabaseSettingsRequest{
			DatabaseID:           "db1",
			FilterableProperties: []string{"Status"},
		})
		if err != nil {
			t.Fatalf("UpdateDatabaseSettings: %v", err)
		}
		ds := resp.DatabaseSettings["db1"]
		if len(ds.VisibleProperties) != 2 || ds.VisibleProperties[0] != "Status" {
			t.Errorf("VisibleProperties = %v", ds.VisibleProperties)
		}
		if len(ds.FilterableProperties) != 1 || ds.FilterableProperties[0] != "Status" {
			t.Errorf("FilterableProperties = %v", ds.FilterableProperties)
		}
	})

	t.Run("visible in GetSettings", func(t *testing.T) {
		resp, err := h.GetSettings(ctx, &dto.GetSettingsRequest{})
		if err != nil {
			t.Fatalf("GetSettings: %v", err)
		}
		if got := resp.DatabaseSettings["db1"].VisibleProperties; len(got) != 2 {
			t.Errorf("VisibleProperties = %v", got)
		}
	})
}

func TestCredentialFallback(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()

	t.Run("no credential anywhere is unauthorized", func(t *testing.T) {
		_, err := h.credential(ctx)
		var ews dto.ErrorWithStatus
		if !errors.As(err, &ews) || ews.StatusCode() != 401 {
			t.Errorf("err = %v, want 401", err)
		}
	})

	t.Run("stored key used when no bearer token", func(t *testing.T) {
		if _, err := h.UpdateSettings(ctx, &dto.UpdateSettingsRequest{APIKey: "stored_key"}); err != nil {
			t.Fatalf("UpdateSettings: %v", err)
		}
		tok, err := h.credential(ctx)
		if err != nil {
			t.Fatalf("credential: %v", err)
		}
		if tok != "stored_key" {
			t.Errorf("token = %q", tok)
		}
	})
}
