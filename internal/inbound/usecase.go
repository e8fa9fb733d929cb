package inbound

import (
	"context"

	"github.com/fekuna/omnipos-warehouse/internal/inbound/dto"
	"github.com/fekuna/omnipos-warehouse/internal/model"
)

// UseCase manages stock receipts. Inbound writes are never stock-validated.
type UseCase interface {
	CreateInbound(ctx context.Context, input *dto.CreateInboundInput) (*model.InboundEntry, error)
	UpdateInbound(ctx context.Context, input *dto.UpdateInboundInput) (*model.InboundEntry, error)
	DeleteInbound(ctx context.Context, id string) error
	ListInbound(ctx context.Context, filters *dto.InboundFilters) ([]model.InboundEntry, error)
	ImportInbound(ctx context.Context, rows [][]string) (*dto.ImportResult, error)
}
