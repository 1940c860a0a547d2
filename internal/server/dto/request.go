// Defines API request types.

package dto

// Validatable is implemented by every request type so the handler
// wrapper can reject bad input before the handler runs.
type Validatable interface {
	Validate() error
}

// SortSpec selects the gateway-side sort for a query. Exactly one of
// Property or Timestamp should be set.
type SortSpec struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"` // "created_time" or "last_edited_time"
	Direction string `json:"direction"`           // "ascending" or "descending"
}

// FilterSpec is one per-property structured filter.
type FilterSpec struct {
	PropertyName string   `json:"propertyName"`
	PropertyType string   `json:"propertyType"` // date, select, multi_select, status, checkbox
	Condition    string   `json:"condition,omitempty"`
	Values       []string `json:"values,omitempty"`
}

// QueryRequest fetches a database's records and runs them through the
// filter/search/sort/projection pipeline.
type QueryRequest struct {
	DatabaseID        string       `json:"database_id"`
	Sorts             []SortSpec   `json:"sorts,omitempty"`
	Filters           []FilterSpec `json:"filters,omitempty"`
	Search            string       `json:"search,omitempty"`
	View              string       `json:"view,omitempty"` // "card" or "list", default list
	VisibleProperties []string     `json:"visible_properties,omitempty"`
}

var filterTypes = map[string]bool{
	"date":         true,
	"select":       true,
	"multi_select": true,
	"status":       true,
	"checkbox":     true,
}

// Validate implements Validatable.
func (r *QueryRequest) Validate() error {
	if r.DatabaseID == "" {
		return MissingField("database_id")
	}
	switch r.View {
	case "", "card", "list":
	default:
		return BadRequest("view must be \"card\" or \"list\"")
	}
	for i := range r.Sorts {
		s := &r.Sorts[i]
		switch s.Direction {
		case "ascending", "descending":
		default:
			return BadRequest("sort direction must be \"ascending\" or \"descending\"")
		}
		if s.Property == "" && s.Timestamp == "" {
			return BadRequest("sort requires a property or timestamp")
		}
	}
	for i := range r.Filters {
		f := &r.Filters[i]
		if f.PropertyName == "" {
			return MissingField("propertyName")
		}
		if !filterTypes[f.PropertyType] {
			return BadRequest("unsupported filter property type: " + f.PropertyType)
		}
	}
	return nil
}

// CycleStatusRequest advances a record's status property to the next
// observed option. When Status is set it is applied as-is instead of
// cycling.
type CycleStatusRequest struct {
	RecordID   string `path:"id" json:"-"`
	DatabaseID string `json:"database_id"`
	Property   string `json:"property"`
	Status     string `json:"status,omitempty"`
}

// Validate implements Validatable.
func (r *CycleStatusRequest) Validate() error {
	if r.RecordID == "" {
		return MissingField("id")
	}
	if r.DatabaseID == "" {
		return MissingField("database_id")
	}
	if r.Property == "" {
		return MissingField("property")
	}
	return nil
}

// PageTitleRequest resolves the title of a relation target page.
type PageTitleRequest struct {
	ID string `path:"id" json:"-"`
}

// Validate implements Validatable.
func (r *PageTitleRequest) Validate() error {
	if r.ID == "" {
		return MissingField("id")
	}
	return nil
}

// maxTitleBatch caps one batch title resolution; a rendered board never
// shows more distinct relation targets than this.
const maxTitleBatch = 100

// PageTitlesRequest resolves the titles of a batch of relation target
// pages in one call.
type PageTitlesRequest struct {
	IDs []string `json:"ids"`
}

// Validate implements Validatable.
func (r *PageTitlesRequest) Validate() error {
	if len(r.IDs) == 0 {
		return MissingField("ids")
	}
	if len(r.IDs) > maxTitleBatch {
		return BadRequest("too many ids in one batch")
	}
	for _, id := range r.IDs {
		if id == "" {
			return BadRequest("ids must not contain empty entries")
		}
	}
	return nil
}

// BlocksRequest fetches a record's child content blocks.
type BlocksRequest struct {
	ID string `path:"id" json:"-"`
}

// Validate implements Validatable.
func (r *BlocksRequest) Validate() error {
	if r.ID == "" {
		return MissingField("id")
	}
	return nil
}

// GetSettingsRequest reads the persisted settings.
type GetSettingsRequest struct{}

// Validate implements Validatable.
func (r *GetSettingsRequest) Validate() error { return nil }

// DatabaseConfigDTO is one configured database tab.
type DatabaseConfigDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ViewType string `json:"viewType"` // "card" or "list"
}

// WidgetConfigDTO is one configured embedded widget.
type WidgetConfigDTO struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DatabaseSettingsDTO holds per-database display preferences.
type DatabaseSettingsDTO struct {
	VisibleProperties    []string `json:"visibleProperties,omitempty"`
	FilterableProperties []string `json:"filterableProperties,omitempty"`
}

// UpdateSettingsRequest replaces the persisted settings. An empty APIKey
// keeps the stored credential.
type UpdateSettingsRequest struct {
	APIKey           string                         `json:"apiKey,omitempty"`
	Databases        []DatabaseConfigDTO            `json:"databases"`
	Widgets          []WidgetConfigDTO              `json:"widgets"`
	DatabaseSettings map[string]DatabaseSettingsDTO `json:"databaseSettings,omitempty"`
}

// Validate implements Validatable.
func (r *UpdateSettingsRequest) Validate() error {
	for i := range r.Databases {
		db := &r.Databases[i]
		if db.ID == "" {
			return MissingField("databases[].id")
		}
		switch db.ViewType {
		case "", "card", "list":
		default:
			return BadRequest("viewType must be \"card\" or \"list\"")
		}
	}
	for i := range r.Widgets {
		w := &r.Widgets[i]
		if w.URL == "" {
			return MissingField("widgets[].url")
		}
	}
	return nil
}

// UpdateDatabaseSettingsRequest merges display preferences for one
// database into the persisted settings. A nil list keeps the stored
// value; an empty list clears it.
type UpdateDatabaseSettingsRequest struct {
	DatabaseID           string   `path:"id" json:"-"`
	VisibleProperties    []string `json:"visibleProperties,omitempty"`
	FilterableProperties []string `json:"filterableProperties,omitempty"`
}

// Validate implements Validatable.
func (r *UpdateDatabaseSettingsRequest) Validate() error {
	if r.DatabaseID == "" {
		return MissingField("id")
	}
	return nil
}

// HealthRequest is the (empty) health check request.
type HealthRequest struct{}

// Validate implements Validatable.
func (r *HealthRequest) Validate() error { return nil }
