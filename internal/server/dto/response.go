// Defines API response types.

package dto

// PropertyPair is one projected (property name, rendered value) entry.
type PropertyPair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RecordView is one record reduced to its renderable parts.
type RecordView struct {
	ID         string         `json:"id"`
	URL        string         `json:"url"`
	Title      string         `json:"title"`
	IconEmoji  string         `json:"iconEmoji,omitempty"`
	CoverURL   string         `json:"coverUrl,omitempty"`
	Properties []PropertyPair `json:"properties"`
}

// QueryResponse carries the projected records plus filter counters for
// the "showing N of M" affordance.
type QueryResponse struct {
	Records  []RecordView `json:"records"`
	Total    int          `json:"total"`
	Filtered int          `json:"filtered"`
}

// CycleStatusResponse reports the optimistically applied status value.
type CycleStatusResponse struct {
	RecordID string `json:"record_id"`
	Property string `json:"property"`
	Status   string `json:"status"`
}

// PageTitleResponse carries a resolved relation target title.
type PageTitleResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// PageTitlesResponse maps each requested page ID to its resolved title.
type PageTitlesResponse struct {
	Titles map[string]string `json:"titles"`
}

// BlockView is one renderable content block.
type BlockView struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Text    string `json:"text"`
	Checked *bool  `json:"checked,omitempty"`
}

// BlocksResponse carries a record's child content blocks.
type BlocksResponse struct {
	Blocks []BlockView `json:"blocks"`
}

// SettingsResponse is the persisted settings with the credential masked.
type SettingsResponse struct {
	APIKeySet        bool                           `json:"apiKeySet"`
	Databases        []DatabaseConfigDTO            `json:"databases"`
	Widgets          []WidgetConfigDTO              `json:"widgets"`
	DatabaseSettings map[string]DatabaseSettingsDTO `json:"databaseSettings"`
}

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
