package outbound

import (
	"context"

	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/outbound/dto"
)

type UseCase interface {
	CreateOutbound(ctx context.Context, input *dto.CreateOutboundInput) (*model.OutboundTransaction, error)
	UpdateOutbound(ctx context.Context, input *dto.UpdateOutboundInput) (*model.OutboundTransaction, error)
	DeleteOutbound(ctx context.Context, id string) error
	GetOutbound(ctx context.Context, id string) (*model.OutboundTransaction, error)
	ListOutbound(ctx context.Context, filters *dto.OutboundFilters) ([]model.OutboundTransaction, int, error)
	RenderHandover(ctx context.Context, id string) (string, error)
}

// SettingsSource supplies branding and the handover template.
type SettingsSource interface {
	GetSettings(ctx context.Context) model.AppSettings
}
