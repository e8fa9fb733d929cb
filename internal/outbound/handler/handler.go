package handler

import (
	"context"

	warehousev1 "github.com/fekuna/omnipos-warehouse/api/warehousev1"
	"github.com/fekuna/omnipos-warehouse/internal/grpcerr"
	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/outbound"
	"github.com/fekuna/omnipos-warehouse/internal/outbound/dto"
	"github.com/fekuna/omnipos-warehouse/internal/product"
	"github.com/fekuna/omnipos-warehouse/internal/reqctx"
	"github.com/fekuna/omnipos-warehouse/pkg/i18n"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"
)

type OutboundHandler struct {
	uc       outbound.UseCase
	products product.Repository
	errs     *grpcerr.Mapper
	logger   logger.ZapLogger
}

func NewOutboundHandler(uc outbound.UseCase, products product.Repository, errs *grpcerr.Mapper, log logger.ZapLogger) *OutboundHandler {
	return &OutboundHandler{
		uc:       uc,
		products: products,
		errs:     errs,
		logger:   log,
	}
}

func (h *OutboundHandler) CreateOutbound(ctx context.Context, req *warehousev1.CreateOutboundRequest) (*warehousev1.OutboundResponse, error) {
	date, err := warehousev1.ParseDate(req.Date)
	if err != nil {
		return nil, h.errs.InvalidArgument(ctx, err.Error())
	}

	txn, err := h.uc.CreateOutbound(ctx, &dto.CreateOutboundInput{
		Recipient: req.Recipient,
		Address:   req.Address,
		Date:      date,
		Items:     itemInputs(req.Items),
	})
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}

	h.logger.Debug("outbound created",
		zap.String("id", txn.ID),
		zap.String("operator", reqctx.GetOperator(ctx)),
		zap.Int("items", len(txn.Items)),
	)

	return h.respond(ctx, txn)
}

func (h *OutboundHandler) UpdateOutbound(ctx context.Context, req *warehousev1.UpdateOutboundRequest) (*warehousev1.OutboundResponse, error) {
	date, err := warehousev1.ParseDate(req.Date)
	if err != nil {
		return nil, h.errs.InvalidArgument(ctx, err.Error())
	}

	txn, err := h.uc.UpdateOutbound(ctx, &dto.UpdateOutboundInput{
		ID:        req.Id,
		Recipient: req.Recipient,
		Address:   req.Address,
		Date:      date,
		Items:     itemInputs(req.Items),
	})
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}

	return h.respond(ctx, txn)
}

func (h *OutboundHandler) DeleteOutbound(ctx context.Context, req *warehousev1.DeleteOutboundRequest) (*emptypb.Empty, error) {
	if err := h.uc.DeleteOutbound(ctx, req.Id); err != nil {
		return nil, h.errs.Status(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (h *OutboundHandler) GetOutbound(ctx context.Context, req *warehousev1.GetOutboundRequest) (*warehousev1.OutboundResponse, error) {
	txn, err := h.uc.GetOutbound(ctx, req.Id)
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}
	if txn == nil {
		return nil, h.errs.Status(ctx, outbound.ErrNotFound)
	}
	return h.respond(ctx, txn)
}

func (h *OutboundHandler) ListOutbound(ctx context.Context, req *warehousev1.ListOutboundRequest) (*warehousev1.ListOutboundResponse, error) {
	txns, total, err := h.uc.ListOutbound(ctx, &dto.OutboundFilters{
		SearchQuery: req.Query,
		Year:        int(req.Year),
		Page:        int(req.Page),
		PageSize:    int(req.PageSize),
	})
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}

	products, err := h.productIndex(ctx, txns...)
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}

	unknown := i18n.T(reqctx.GetLocale(ctx), "unknown_product", nil)
	out := make([]*warehousev1.OutboundTransaction, len(txns))
	for i := range txns {
		out[i] = MapTransaction(&txns[i], products, unknown)
	}
	return &warehousev1.ListOutboundResponse{Transactions: out, Total: int32(total)}, nil
}

func (h *OutboundHandler) RenderHandover(ctx context.Context, req *warehousev1.RenderHandoverRequest) (*warehousev1.RenderHandoverResponse, error) {
	html, err := h.uc.RenderHandover(ctx, req.Id)
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}
	return &warehousev1.RenderHandoverResponse{Html: html}, nil
}

func (h *OutboundHandler) respond(ctx context.Context, txn *model.OutboundTransaction) (*warehousev1.OutboundResponse, error) {
	products, err := h.productIndex(ctx, *txn)
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}
	unknown := i18n.T(reqctx.GetLocale(ctx), "unknown_product", nil)
	return &warehousev1.OutboundResponse{Transaction: MapTransaction(txn, products, unknown)}, nil
}

func (h *OutboundHandler) productIndex(ctx context.Context, txns ...model.OutboundTransaction) (map[string]model.Product, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, t := range txns {
		for _, it := range t.Items {
			if !seen[it.ProductID] {
				seen[it.ProductID] = true
				ids = append(ids, it.ProductID)
			}
		}
	}
	found, err := h.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]model.Product, len(found))
	for _, p := range found {
		idx[p.ID] = p
	}
	return idx, nil
}

func itemInputs(items []*warehousev1.OutboundItem) []dto.ItemInput {
	out := make([]dto.ItemInput, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		out = append(out, dto.ItemInput{
			ID:        it.Id,
			ProductID: it.ProductId,
			Quantity:  int(it.Quantity),
		})
	}
	return out
}

func MapTransaction(t *model.OutboundTransaction, products map[string]model.Product, unknown string) *warehousev1.OutboundTransaction {
	items := make([]*warehousev1.OutboundItem, len(t.Items))
	for i, it := range t.Items {
		item := &warehousev1.OutboundItem{
			Id:          it.ID,
			ProductId:   it.ProductID,
			ProductName: unknown,
			Quantity:    int32(it.Quantity),
		}
		if p, ok := products[it.ProductID]; ok {
			item.ProductCode = p.Code
			item.ProductName = p.Name
			item.Unit = p.Unit
		}
		items[i] = item
	}

	return &warehousev1.OutboundTransaction{
		Id:            t.ID,
		Recipient:     t.Recipient,
		Address:       t.Address,
		Date:          warehousev1.FormatDate(t.Date),
		Items:         items,
		TotalQuantity: int32(t.TotalQuantity()),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
