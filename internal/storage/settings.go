// Package storage manages the persisted dashboard settings.
//
// Settings live in settings.json under the data directory. A defaults
// manifest (defaults.yaml) can pre-seed the credential, databases, and
// widgets; stored values win field by field, falling back to the manifest
// when the stored credential is empty or a stored list is empty.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/maruel/ksid"
	"gopkg.in/yaml.v3"
)

// ViewType selects the layout for a database tab.
type ViewType string

// Supported view types.
const (
	ViewTypeCard ViewType = "card"
	ViewTypeList ViewType = "list"
)

// DatabaseConfig is one configured database tab.
type DatabaseConfig struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	ViewType ViewType `json:"viewType" yaml:"view_type"`
}

// WidgetConfig is one configured embedded widget. IDs are assigned on
// save when missing.
type WidgetConfig struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// DatabaseSettings holds per-database display preferences, keyed by the
// database ID in Settings.
type DatabaseSettings struct {
	VisibleProperties    []string `json:"visibleProperties,omitempty"`
	FilterableProperties []string `json:"filterableProperties,omitempty"`
}

// Settings is the full persisted configuration.
type Settings struct {
	APIKey           string                      `json:"apiKey"`
	Databases        []DatabaseConfig            `json:"databases"`
	Widgets          []WidgetConfig              `json:"widgets"`
	DatabaseSettings map[string]DatabaseSettings `json:"databaseSettings"`
}

// defaultsManifest is the optional defaults.yaml shape.
type defaultsManifest struct {
	APIKey    string           `yaml:"api_key"`
	Databases []DatabaseConfig `yaml:"databases"`
	Widgets   []WidgetConfig   `yaml:"widgets"`
}

// Store reads and writes settings.json, merging in manifest defaults.
type Store struct {
	path     string
	defaults defaultsManifest

	mu sync.Mutex
}

// NewStore creates a store rooted at dataDir, loading defaults.yaml if
// present.
func NewStore(dataDir string) (*Store, error) {
	s := &Store{path: filepath.Join(dataDir, "settings.json")}

	manifestPath := filepath.Join(dataDir, "defaults.yaml")
	data, err := os.ReadFile(manifestPath) //nolint:gosec // G304: path is constructed from dataDir flag, not user input
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read defaults manifest: %w", err)
		}
		return s, nil
	}
	if err := yaml.Unmarshal(data, &s.defaults); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", manifestPath, err)
	}
	return s, nil
}

// Load returns the persisted settings merged with defaults. A missing or
// unreadable settings file yields the defaults alone.
func (s *Store) Load() (*Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() (*Settings, error) {
	stored := &Settings{}
	data, err := os.ReadFile(s.path) //nolint:gosec // G304: path is constructed from dataDir flag, not user input
	switch {
	case err == nil:
		if err := json.Unmarshal(data, stored); err != nil {
			// A corrupt settings file falls back to defaults rather than
			// bricking the dashboard.
			stored = &Settings{}
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	if stored.APIKey == "" {
		stored.APIKey = s.defaults.APIKey
	}
	if len(stored.Databases) == 0 {
		stored.Databases = append([]DatabaseConfig(nil), s.defaults.Databases...)
	}
	if len(stored.Widgets) == 0 {
		stored.Widgets = append([]WidgetConfig(nil), s.defaults.Widgets...)
	}
	if stored.DatabaseSettings == nil {
		stored.DatabaseSettings = make(map[string]DatabaseSettings)
	}
	for i := range stored.Databases {
		if stored.Databases[i].ViewType == "" {
			stored.Databases[i].ViewType = ViewTypeCard
		}
	}
	return stored, nil
}

// Save persists the settings atomically, assigning IDs to widgets that
// lack one.
func (s *Store) Save(settings *Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settings == nil {
		return errors.New("settings must not be nil")
	}
	for i := range settings.Widgets {
		if settings.Widgets[i].ID == "" {
			settings.Widgets[i].ID = ksid.NewID().String()
		}
	}
	if settings.DatabaseSettings == nil {
		settings.DatabaseSettings = make(map[string]DatabaseSettings)
	}
	return s.saveLocked(settings)
}

// UpdateDatabaseSettings merges per-database display preferences into the
// stored settings, creating the entry if needed.
func (s *Store) UpdateDatabaseSettings(databaseID string, ds DatabaseSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.loadLocked()
	if err != nil {
		return err
	}
	cur := settings.DatabaseSettings[databaseID]
	if ds.VisibleProperties != nil {
		cur.VisibleProperties = ds.VisibleProperties
	}
	if ds.FilterableProperties != nil {
		cur.FilterableProperties = ds.FilterableProperties
	}
	settings.DatabaseSettings[databaseID] = cur
	return s.saveLocked(settings)
}

// saveLocked writes settings.json atomically via a rename. Callers hold mu.
func (s *Store) saveLocked(settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}
