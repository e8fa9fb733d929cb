package inbound

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-warehouse/internal/inbound/dto"
	"github.com/fekuna/omnipos-warehouse/internal/model"
)

var ErrNotFound = errors.New("inbound entry not found")

type Repository interface {
	Create(ctx context.Context, entry *model.InboundEntry) error
	Update(ctx context.Context, entry *model.InboundEntry) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.InboundEntry, error)
	FindAll(ctx context.Context, filters *dto.InboundFilters) ([]model.InboundEntry, error)
	// CreateBatch appends all entries in one write.
	CreateBatch(ctx context.Context, entries []model.InboundEntry) error
}
