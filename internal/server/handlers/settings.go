// Implements the settings endpoints.

package handlers

import (
	"context"

	"github.com/notiondash/notiondash/internal/server/dto"
	"github.com/notiondash/notiondash/internal/storage"
)

// GetSettings returns the persisted settings. The credential itself is
// never returned, only whether one is configured.
func (h *Handler) GetSettings(ctx context.Context, req *dto.GetSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := h.svc.Settings.Load()
	if err != nil {
		return nil, dto.InternalWithError("failed to load settings", err)
	}
	return toSettingsResponse(settings), nil
}

// UpdateSettings replaces the persisted settings. An empty apiKey in the
// request keeps the stored credential, so the client never has to echo
// the secret back.
func (h *Handler) UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	current, err := h.svc.Settings.Load()
	if err != nil {
		return nil, dto.InternalWithError("failed to load settings", err)
	}

	settings := &storage.Settings{
		APIKey:           req.APIKey,
		DatabaseSettings: make(map[string]storage.DatabaseSettings, len(req.DatabaseSettings)),
	}
	if settings.APIKey == "" {
		settings.APIKey = current.APIKey
	}
	for _, db := range req.Databases {
		vt := storage.ViewType(db.ViewType)
		if vt == "" {
			vt = storage.ViewTypeCard
		}
		settings.Databases = append(settings.Databases, storage.DatabaseConfig{
			ID:       db.ID,
			Name:     db.Name,
			ViewType: vt,
		})
	}
	for _, w := range req.Widgets {
		settings.Widgets = append(settings.Widgets, storage.WidgetConfig{
			ID:   w.ID,
			Name: w.Name,
			URL:  w.URL,
		})
	}
	for id, ds := range req.DatabaseSettings {
		settings.DatabaseSettings[id] = storage.DatabaseSettings{
			VisibleProperties:    ds.VisibleProperties,
			FilterableProperties: ds.FilterableProperties,
		}
	}

	if err := h.svc.Settings.Save(settings); err != nil {
		return nil, dto.InternalWithError("failed to save settings", err)
	}
	saved, err := h.svc.Settings.Load()
	if err != nil {
		return nil, dto.InternalWithError("failed to load settings", err)
	}
	return toSettingsResponse(saved), nil
}

// UpdateDatabaseSettings merges display preferences for one database
// without touching the rest of the settings, so concurrent edits to
// other tabs are not clobbered.
func (h *Handler) UpdateDatabaseSettings(ctx context.Context, req *dto.UpdateDatabaseSettingsRequest) (*dto.SettingsResponse, error) {
	ds := storage.DatabaseSettings{
		VisibleProperties:    req.VisibleProperties,
		FilterableProperties: req.FilterableProperties,
	}
	if err := h.svc.Settings.UpdateDatabaseSettings(req.DatabaseID, ds); err != nil {
		return nil, dto.InternalWithError("failed to save settings", err)
	}
	saved, err := h.svc.Settings.Load()
	if err != nil {
		return nil, dto.InternalWithError("failed to load settings", err)
	}
	return toSettingsResponse(saved), nil
}

func toSettingsResponse(s *storage.Settings) *dto.SettingsResponse {
	resp := &dto.SettingsResponse{
		APIKeySet:        s.APIKey != "",
		Databases:        make([]dto.DatabaseConfigDTO, 0, len(s.Databases)),
		Widgets:          make([]dto.WidgetConfigDTO, 0, len(s.Widgets)),
		DatabaseSettings: make(map[string]dto.DatabaseSettingsDTO, len(s.DatabaseSettings)),
	}
	for _, db := range s.Databases {
		resp.Databases = append(resp.Databases, dto.DatabaseConfigDTO{
			ID:       db.ID,
			Name:     db.Name,
			ViewType: string(db.ViewType),
		})
	}
	for _, w := range s.Widgets {
		resp.Widgets = append(resp.Widgets, dto.WidgetConfigDTO{ID: w.ID, Name: w.Name, URL: w.URL})
	}
	for id, ds := range s.DatabaseSettings {
		resp.DatabaseSettings[id] = dto.DatabaseSettingsDTO{
			VisibleProperties:    ds.VisibleProperties,
			FilterableProperties: ds.FilterableProperties,
		}
	}
	return resp
}
