// Implements the status mutation endpoint.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/notiondash/notiondash/internal/notion"
	"github.com/notiondash/notiondash/internal/records"
	"github.com/notiondash/notiondash/internal/server/dto"
)

// pushTimeout bounds the asynchronous gateway write after an optimistic
// local update.
const pushTimeout = 30 * time.Second

// CycleStatus advances a record's status property to the next observed
// option (or applies an explicit value) and pushes the change to the
// gateway in the background.
//
// The local update is optimistic: it stands until the next fetch
// overwrites the collection, even when the push fails. Push failures are
// logged, never surfaced.
func (h *Handler) CycleStatus(ctx context.Context, req *dto.CycleStatusRequest) (*dto.CycleStatusResponse, error) {
	token, err := h.credential(ctx)
	if err != nil {
		return nil, err
	}
	client := h.svc.Notion.WithToken(token)
	databaseID := notion.NormalizeDatabaseID(req.DatabaseID)

	coll := h.collections.get(databaseID)
	if coll.Len() == 0 {
		// Nothing loaded yet for this database (e.g. server restart);
		// fetch so the observed option domain exists.
		seq := coll.BeginFetch()
		pages, err := client.QueryDatabaseAll(ctx, databaseID, nil)
		if err != nil {
			return nil, upstreamError(err)
		}
		coll.Apply(seq, pages)
	}

	var applied string
	if req.Status != "" {
		applied = req.Status
		err = coll.SetStatus(req.RecordID, req.Property, req.Status)
	} else {
		applied, err = coll.CycleStatus(req.RecordID, req.Property)
	}
	switch {
	case errors.Is(err, records.ErrRecordNotFound):
		return nil, dto.NotFound("record")
	case errors.Is(err, records.ErrNotStatus):
		return nil, dto.BadRequest("property is not a status property")
	case errors.Is(err, records.ErrNoCycle):
		// Fewer than two observed options: nothing to advance to. Report
		// the unchanged value without touching the gateway.
		return &dto.CycleStatusResponse{RecordID: req.RecordID, Property: req.Property, Status: applied}, nil
	case err != nil:
		return nil, dto.InternalWithError("status update failed", err)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		if err := client.UpdatePageStatus(ctx, req.RecordID, req.Property, applied); err != nil {
			slog.Error("Failed to push status update", "record", req.RecordID, "property", req.Property, "status", applied, "err", err)
		}
	}()

	return &dto.CycleStatusResponse{RecordID: req.RecordID, Property: req.Property, Status: applied}, nil
}
