package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/fekuna/omnipos-warehouse/internal/inventory"
	"github.com/fekuna/omnipos-warehouse/internal/inventory/dto"
	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/outbound"
	"github.com/fekuna/omnipos-warehouse/internal/product"
	"github.com/fekuna/omnipos-warehouse/internal/stock"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	logger logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *inventoryUseCase) GetProductStock(ctx context.Context, productID string) (*dto.StockLevel, error) {
	snap, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := snap.ProductByID(productID)
	if !ok {
		return nil, product.ErrNotFound
	}
	level := newLevel(p, stock.CurrentStock(snap.Ledger(), productID))
	return &level, nil
}

// ListStock returns every catalog product with its current stock. The total is
// the summed stock value of the returned rows.
func (uc *inventoryUseCase) ListStock(ctx context.Context, filters *dto.StockFilters) ([]dto.StockLevel, decimal.Decimal, error) {
	if filters == nil {
		filters = &dto.StockFilters{}
	}
	snap, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}

	levels := stock.Levels(snap.Ledger())
	q := strings.ToLower(strings.TrimSpace(filters.SearchQuery))

	out := make([]dto.StockLevel, 0, len(snap.Products))
	total := decimal.Zero
	for _, p := range snap.Products {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Code), q) {
			continue
		}
		level := newLevel(p, levels[p.ID])
		total = total.Add(level.Value)
		out = append(out, level)
	}

	sortLevels(out, filters.SortBy)
	return out, total, nil
}

// ValidateOutbound runs the outbound admission check without writing anything.
func (uc *inventoryUseCase) ValidateOutbound(ctx context.Context, input *dto.ValidateOutboundInput) error {
	snap, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return err
	}

	var previous *model.OutboundTransaction
	if input.TransactionID != "" {
		for i := range snap.Outbound {
			if snap.Outbound[i].ID == input.TransactionID {
				previous = &snap.Outbound[i]
				break
			}
		}
		if previous == nil {
			return outbound.ErrNotFound
		}
	}

	proposed := model.OutboundTransaction{ID: input.TransactionID}
	for _, it := range input.Items {
		proposed.Items = append(proposed.Items, model.OutboundItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	err = stock.ValidateOutboundWrite(snap.Ledger(), proposed, previous)
	if err != nil {
		uc.logger.Debug("outbound dry-run rejected", zap.String("transaction_id", input.TransactionID), zap.Error(err))
	}
	return err
}

func newLevel(p model.Product, qty int) dto.StockLevel {
	return dto.StockLevel{
		Product: p,
		Stock:   qty,
		Value:   p.UnitPrice.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func sortLevels(levels []dto.StockLevel, by string) {
	var less func(a, b dto.StockLevel) bool
	switch by {
	case dto.SortStockAsc:
		less = func(a, b dto.StockLevel) bool { return a.Stock < b.Stock }
	case dto.SortCode:
		less = func(a, b dto.StockLevel) bool { return a.Product.Code < b.Product.Code }
	case dto.SortName:
		less = func(a, b dto.StockLevel) bool { return a.Product.Name < b.Product.Name }
	default:
		less = func(a, b dto.StockLevel) bool { return a.Stock > b.Stock }
	}
	sort.SliceStable(levels, func(i, j int) bool { return less(levels[i], levels[j]) })
}
