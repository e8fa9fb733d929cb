package handler

import (
	"context"

	warehousev1 "github.com/fekuna/omnipos-warehouse/api/warehousev1"
	"github.com/fekuna/omnipos-warehouse/internal/grpcerr"
	"github.com/fekuna/omnipos-warehouse/internal/inbound"
	"github.com/fekuna/omnipos-warehouse/internal/inbound/dto"
	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/product"
	"github.com/fekuna/omnipos-warehouse/internal/reqctx"
	"github.com/fekuna/omnipos-warehouse/internal/sheet"
	"github.com/fekuna/omnipos-warehouse/pkg/i18n"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"
)

type InboundHandler struct {
	uc       inbound.UseCase
	products product.Repository
	errs     *grpcerr.Mapper
	logger   logger.ZapLogger
}

func NewInboundHandler(uc inbound.UseCase, products product.Repository, errs *grpcerr.Mapper, log logger.ZapLogger) *InboundHandler {
	return &InboundHandler{
		uc:       uc,
		products: products,
		errs:     errs,
		logger:   log,
	}
}

func (h *InboundHandler) CreateInbound(ctx context.Context, req *warehousev1.CreateInboundRequest) (*warehousev1.InboundResponse, error) {
	date, err := warehousev1.ParseDate(req.Date)
	if err != nil {
		return nil, h.errs.InvalidArgument(ctx, err.Error())
	}

	entry, err := h.uc.CreateInbound(ctx, &dto.CreateInboundInput{
		ProductID: req.ProductId,
		Quantity:  int(req.Quantity),
		Date:      date,
	})
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}

	return &warehousev1.InboundResponse{Entry: h.mapOne(ctx, entry)}, nil
}

func (h *InboundHandler) UpdateInbound(ctx context.Context, req *warehousev1.UpdateInboundRequest) (*warehousev1.InboundResponse, error) {
	date, err := warehousev1.ParseDate(req.Date)
	if err != nil {
		return nil, h.errs.InvalidArgument(ctx, err.Error())
	}

	entry, err := h.uc.UpdateInbound(ctx, &dto.UpdateInboundInput{
		ID:        req.Id,
		ProductID: req.ProductId,
		Quantity:  int(req.Quantity),
		Date:      date,
	})
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}

	return &warehousev1.InboundResponse{Entry: h.mapOne(ctx, entry)}, nil
}

func (h *InboundHandler) DeleteInbound(ctx context.Context, req *warehousev1.DeleteInboundRequest) (*emptypb.Empty, error) {
	if err := h.uc.DeleteInbound(ctx, req.Id); err != nil {
		return nil, h.errs.Status(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (h *InboundHandler) ListInbound(ctx context.Context, req *warehousev1.ListInboundRequest) (*warehousev1.ListInboundResponse, error) {
	entries, err := h.uc.ListInbound(ctx, &dto.InboundFilters{
		ProductID: req.ProductId,
		Year:      int(req.Year),
		Month:     int(req.Month),
	})
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}

	names, err := h.productsFor(ctx, entries)
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}

	unknown := i18n.T(reqctx.GetLocale(ctx), "unknown_product", nil)
	out := make([]*warehousev1.InboundEntry, len(entries))
	for i := range entries {
		out[i] = MapEntry(&entries[i], names, unknown)
	}
	return &warehousev1.ListInboundResponse{Entries: out}, nil
}

func (h *InboundHandler) ImportInbound(ctx context.Context, req *warehousev1.ImportRequest) (*warehousev1.ImportResponse, error) {
	rows, err := sheet.Read(req.FileName, req.Content)
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}

	res, err := h.uc.ImportInbound(ctx, rows)
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}

	h.logger.Info("inbound imported",
		zap.String("file", req.FileName),
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped),
	)

	return &warehousev1.ImportResponse{
		Imported: int32(res.Imported),
		Skipped:  int32(res.Skipped),
		Message:  i18n.T(reqctx.GetLocale(ctx), "import_done", map[string]any{"Count": res.Imported}),
	}, nil
}

func (h *InboundHandler) mapOne(ctx context.Context, e *model.InboundEntry) *warehousev1.InboundEntry {
	names := map[string]model.Product{}
	if p, err := h.products.FindByID(ctx, e.ProductID); err == nil && p != nil {
		names[p.ID] = *p
	}
	return MapEntry(e, names, i18n.T(reqctx.GetLocale(ctx), "unknown_product", nil))
}

func (h *InboundHandler) productsFor(ctx context.Context, entries []model.InboundEntry) (map[string]model.Product, error) {
	seen := make(map[string]bool)
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if !seen[e.ProductID] {
			seen[e.ProductID] = true
			ids = append(ids, e.ProductID)
		}
	}
	found, err := h.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.Product, len(found))
	for _, p := range found {
		out[p.ID] = p
	}
	return out, nil
}

// MapEntry resolves the product for display. Entries whose product was deleted
// keep their id and show unknown as the name.
func MapEntry(e *model.InboundEntry, products map[string]model.Product, unknown string) *warehousev1.InboundEntry {
	out := &warehousev1.InboundEntry{
		Id:          e.ID,
		ProductId:   e.ProductID,
		ProductName: unknown,
		Quantity:    int32(e.Quantity),
		Date:        warehousev1.FormatDate(e.Date),
		Period:      e.PeriodLabel(),
		CreatedAt:   e.CreatedAt,
	}
	if p, ok := products[e.ProductID]; ok {
		out.ProductCode = p.Code
		out.ProductName = p.Name
	}
	return out
}
