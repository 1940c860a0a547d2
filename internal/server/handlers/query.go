// Implements the record query endpoint: fetch, filter, search, sort,
// project.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/notiondash/notiondash/internal/notion"
	"github.com/notiondash/notiondash/internal/records"
	"github.com/notiondash/notiondash/internal/server/dto"
	"github.com/notiondash/notiondash/internal/server/reqctx"
)

// credential returns the upstream credential for this request: the
// bearer token when supplied, otherwise the stored settings key.
// Requests with neither are rejected before any network call.
func (h *Handler) credential(ctx context.Context) (string, error) {
	if tok := reqctx.Credential(ctx); tok != "" {
		return tok, nil
	}
	settings, err := h.svc.Settings.Load()
	if err != nil {
		return "", dto.InternalWithError("failed to load settings", err)
	}
	if settings.APIKey == "" {
		return "", dto.Unauthorized("no API credential configured")
	}
	return settings.APIKey, nil
}

// upstreamError converts a gateway failure into an API error, preserving
// the upstream status and code.
func upstreamError(err error) error {
	var apiErr *notion.Error
	if errors.As(err, &apiErr) {
		return dto.Upstream(apiErr.Status, apiErr.Message).WithDetail("upstream_code", apiErr.Code)
	}
	return dto.InternalWithError("content service request failed", err)
}

// Query fetches a database's records and runs the record pipeline.
func (h *Handler) Query(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	token, err := h.credential(ctx)
	if err != nil {
		return nil, err
	}
	client := h.svc.Notion.WithToken(token)
	databaseID := notion.NormalizeDatabaseID(req.DatabaseID)

	coll := h.collections.get(databaseID)
	seq := coll.BeginFetch()

	opts := &notion.QueryOptions{}
	for _, s := range req.Sorts {
		opts.Sorts = append(opts.Sorts, notion.Sort{
			Property:  s.Property,
			Timestamp: s.Timestamp,
			Direction: s.Direction,
		})
	}

	pages, err := client.QueryDatabaseAll(ctx, databaseID, opts)
	if err != nil {
		return nil, upstreamError(err)
	}
	if !coll.Apply(seq, pages) {
		// A newer fetch finished first; serve its data instead of
		// clobbering it with this stale response.
		slog.DebugContext(ctx, "Discarding stale fetch", "database", databaseID, "seq", seq)
		pages = coll.Pages()
	}
	total := len(pages)

	filters := make([]records.PropertyFilter, 0, len(req.Filters))
	for _, f := range req.Filters {
		filters = append(filters, records.PropertyFilter{
			PropertyName: f.PropertyName,
			PropertyType: f.PropertyType,
			Condition:    f.Condition,
			Values:       f.Values,
		})
	}
	pages = records.Filter(pages, filters, time.Now())
	pages = records.Search(pages, req.Search)

	// Re-sort locally so ordering survives with the documented
	// absent-last policy even when the gateway sort was timestamp-based.
	if len(req.Sorts) > 0 {
		s := req.Sorts[0]
		property := s.Property
		if property == "" {
			property = s.Timestamp
		}
		records.Sort(pages, property, records.Direction(s.Direction))
	}

	visible := req.VisibleProperties
	mode := records.ViewMode(req.View)
	settings, err := h.svc.Settings.Load()
	if err != nil {
		return nil, dto.InternalWithError("failed to load settings", err)
	}
	if len(visible) == 0 {
		visible = settings.DatabaseSettings[databaseID].VisibleProperties
	}
	if len(visible) == 0 {
		visible = allPropertyNames(pages)
	}
	if mode == "" {
		mode = records.ViewList
		for _, db := range settings.Databases {
			if notion.NormalizeDatabaseID(db.ID) == databaseID && db.ViewType == "card" {
				mode = records.ViewCard
			}
		}
	}

	projected := records.Project(pages, visible, mode)
	resp := &dto.QueryResponse{
		Records:  make([]dto.RecordView, 0, len(projected)),
		Total:    total,
		Filtered: len(projected),
	}
	for i := range projected {
		resp.Records = append(resp.Records, toRecordView(&projected[i]))
	}
	return resp, nil
}

// allPropertyNames returns the union of property names across records in
// a stable (sorted) order, used when no visible-property preference
// exists.
func allPropertyNames(pages []notion.Page) []string {
	var names []string
	for i := range pages {
		for name := range pages[i].Properties {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	slices.Sort(names)
	return names
}
