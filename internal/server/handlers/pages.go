// Implements relation title resolution and block retrieval.

package handlers

import (
	"context"

	"github.com/notiondash/notiondash/internal/notion"
	"github.com/notiondash/notiondash/internal/records"
	"github.com/notiondash/notiondash/internal/server/dto"
)

// titleFetcher adapts the gateway client to records.TitleFetcher, using
// the credential carried on the request context.
type titleFetcher struct {
	h *Handler
}

func (f titleFetcher) PageTitle(ctx context.Context, id string) (string, error) {
	token, err := f.h.credential(ctx)
	if err != nil {
		return "", err
	}
	page, err := f.h.svc.Notion.WithToken(token).GetPage(ctx, id)
	if err != nil {
		return "", err
	}
	return records.Title(page), nil
}

// PageTitle resolves the title of a relation target page. Results are
// cached and concurrent lookups for the same page are de-duplicated, so
// a card full of relations costs at most one request per distinct target.
func (h *Handler) PageTitle(ctx context.Context, req *dto.PageTitleRequest) (*dto.PageTitleResponse, error) {
	if _, err := h.credential(ctx); err != nil {
		return nil, err
	}
	title := h.resolver.Resolve(ctx, req.ID)
	return &dto.PageTitleResponse{ID: req.ID, Title: title}, nil
}

// PageTitles resolves a batch of relation target titles in one call,
// fanning out bounded concurrent lookups for the cache misses.
func (h *Handler) PageTitles(ctx context.Context, req *dto.PageTitlesRequest) (*dto.PageTitlesResponse, error) {
	if _, err := h.credential(ctx); err != nil {
		return nil, err
	}
	return &dto.PageTitlesResponse{Titles: h.resolver.ResolveAll(ctx, req.IDs)}, nil
}

// Blocks fetches a record's child content blocks, reduced to the kinds
// the dashboard renders. Unsupported block kinds keep their type with
// empty text so the client can show a placeholder.
func (h *Handler) Blocks(ctx context.Context, req *dto.BlocksRequest) (*dto.BlocksResponse, error) {
	token, err := h.credential(ctx)
	if err != nil {
		return nil, err
	}
	blocks, err := h.svc.Notion.WithToken(token).GetBlockChildrenAll(ctx, req.ID)
	if err != nil {
		return nil, upstreamError(err)
	}

	resp := &dto.BlocksResponse{Blocks: make([]dto.BlockView, 0, len(blocks))}
	for i := range blocks {
		resp.Blocks = append(resp.Blocks, toBlockView(&blocks[i]))
	}
	return resp, nil
}

func toBlockView(b *notion.Block) dto.BlockView {
	view := dto.BlockView{ID: b.ID, Type: b.Type}
	var text *notion.TextBlock
	switch b.Type {
	case "paragraph":
		text = b.Paragraph
	case "heading_1":
		text = b.Heading1
	case "heading_2":
		text = b.Heading2
	case "heading_3":
		text = b.Heading3
	case "bulleted_list_item":
		text = b.BulletedListItem
	case "numbered_list_item":
		text = b.NumberedListItem
	case "to_do":
		if b.ToDo != nil {
			view.Text = notion.PlainText(b.ToDo.RichText)
			checked := b.ToDo.Checked
			view.Checked = &checked
		}
		return view
	}
	if text != nil {
		view.Text = notion.PlainText(text.RichText)
	}
	return view
}
