package handlers

import (
	"context"

	"github.com/notiondash/notiondash/internal/server/dto"
)

// Health reports server liveness and build version.
func (h *Handler) Health(ctx context.Context, req *dto.HealthRequest) (*dto.HealthResponse, error) {
	return &dto.HealthResponse{Status: "ok", Version: h.version}, nil
}
