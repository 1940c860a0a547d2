package handlers

import (
	"github.com/notiondash/notiondash/internal/records"
	"github.com/notiondash/notiondash/internal/server/dto"
)

func toRecordView(p *records.Projected) dto.RecordView {
	view := dto.RecordView{
		ID:        p.ID,
		URL:       p.URL,
		Title:     p.Title,
		IconEmoji: p.IconEmoji,
		CoverURL:  p.CoverURL,
	}
	view.Properties = make([]dto.PropertyPair, 0, len(p.Properties))
	for _, pair := range p.Properties {
		view.Properties = append(view.Properties, dto.PropertyPair{Name: pair.Name, Value: pair.Value})
	}
	return view
}
