package handler

import (
	"context"
	"errors"

	warehousev1 "github.com/fekuna/omnipos-warehouse/api/warehousev1"
	"github.com/fekuna/omnipos-warehouse/internal/grpcerr"
	"github.com/fekuna/omnipos-warehouse/internal/inventory"
	"github.com/fekuna/omnipos-warehouse/internal/inventory/dto"
	"github.com/fekuna/omnipos-warehouse/internal/stock"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"google.golang.org/grpc/status"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	errs   *grpcerr.Mapper
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, errs *grpcerr.Mapper, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		errs:   errs,
		logger: log,
	}
}

func (h *InventoryHandler) GetStock(ctx context.Context, req *warehousev1.GetStockRequest) (*warehousev1.StockResponse, error) {
	level, err := h.uc.GetProductStock(ctx, req.ProductId)
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}
	return &warehousev1.StockResponse{Level: MapLevel(level)}, nil
}

func (h *InventoryHandler) ListStock(ctx context.Context, req *warehousev1.ListStockRequest) (*warehousev1.ListStockResponse, error) {
	levels, total, err := h.uc.ListStock(ctx, &dto.StockFilters{
		SearchQuery: req.Query,
		SortBy:      req.SortBy,
	})
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}

	out := make([]*warehousev1.StockLevel, len(levels))
	for i := range levels {
		out[i] = MapLevel(&levels[i])
	}
	return &warehousev1.ListStockResponse{
		Levels:     out,
		TotalValue: total.StringFixed(2),
	}, nil
}

// ValidateOutbound answers stock rejections in the response body so forms can
// show them inline. Anything else is returned as a status error.
func (h *InventoryHandler) ValidateOutbound(ctx context.Context, req *warehousev1.ValidateOutboundRequest) (*warehousev1.ValidateOutboundResponse, error) {
	input := &dto.ValidateOutboundInput{TransactionID: req.TransactionId}
	for _, it := range req.Items {
		if it == nil {
			continue
		}
		input.Items = append(input.Items, dto.ValidateItem{ProductID: it.ProductId, Quantity: int(it.Quantity)})
	}

	err := h.uc.ValidateOutbound(ctx, input)
	if err == nil {
		return &warehousev1.ValidateOutboundResponse{Ok: true}, nil
	}
	if !isStockRejection(err) {
		return nil, h.errs.Status(ctx, err)
	}

	resp := &warehousev1.ValidateOutboundResponse{Message: status.Convert(h.errs.Status(ctx, err)).Message()}
	var short *stock.InsufficientStockError
	if errors.As(err, &short) {
		resp.ProductId = short.ProductID
		resp.Requested = int32(short.Requested)
		resp.Available = int32(short.Available)
	}
	var dup *stock.DuplicateItemError
	if errors.As(err, &dup) {
		resp.ProductId = dup.ProductID
	}
	return resp, nil
}

func isStockRejection(err error) bool {
	var short *stock.InsufficientStockError
	return errors.As(err, &short) ||
		errors.Is(err, stock.ErrNoItems) ||
		errors.Is(err, stock.ErrMissingProduct) ||
		errors.Is(err, stock.ErrDuplicateItem) ||
		errors.Is(err, stock.ErrBadQuantity)
}

func MapLevel(l *dto.StockLevel) *warehousev1.StockLevel {
	if l == nil {
		return nil
	}
	return &warehousev1.StockLevel{
		ProductId: l.Product.ID,
		Code:      l.Product.Code,
		Name:      l.Product.Name,
		Unit:      l.Product.Unit,
		Stock:     int32(l.Stock),
		UnitPrice: l.Product.UnitPrice.StringFixed(2),
		Value:     l.Value.StringFixed(2),
	}
}
