package inventory

import (
	"context"

	"github.com/fekuna/omnipos-warehouse/internal/inventory/dto"
	"github.com/shopspring/decimal"
)

// UseCase is the stock engine boundary: read-only stock queries and dry-run
// validation of outbound writes.
type UseCase interface {
	GetProductStock(ctx context.Context, productID string) (*dto.StockLevel, error)
	ListStock(ctx context.Context, filters *dto.StockFilters) ([]dto.StockLevel, decimal.Decimal, error)
	ValidateOutbound(ctx context.Context, input *dto.ValidateOutboundInput) error
}
