package handler

import (
	"context"
	"strings"

	warehousev1 "github.com/fekuna/omnipos-warehouse/api/warehousev1"
	"github.com/fekuna/omnipos-warehouse/internal/grpcerr"
	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/product"
	"github.com/fekuna/omnipos-warehouse/internal/product/dto"
	"github.com/fekuna/omnipos-warehouse/internal/reqctx"
	"github.com/fekuna/omnipos-warehouse/internal/sheet"
	"github.com/fekuna/omnipos-warehouse/pkg/i18n"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"
)

type ProductHandler struct {
	uc     product.UseCase
	errs   *grpcerr.Mapper
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, errs *grpcerr.Mapper, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		errs:   errs,
		logger: log,
	}
}

func (h *ProductHandler) CreateProduct(ctx context.Context, req *warehousev1.CreateProductRequest) (*warehousev1.ProductResponse, error) {
	price, err := parsePrice(req.UnitPrice)
	if err != nil {
		return nil, h.errs.InvalidArgument(ctx, "unit_price")
	}

	input := &dto.CreateProductInput{
		Code:      strings.TrimSpace(req.Code),
		Name:      strings.TrimSpace(req.Name),
		Unit:      strings.TrimSpace(req.Unit),
		UnitPrice: price,
	}

	p, err := h.uc.CreateProduct(ctx, input)
	if err != nil {
		h.logger.Warn("failed to create product", zap.String("code", input.Code), zap.Error(err))
		return nil, h.errs.Status(ctx, err)
	}

	return &warehousev1.ProductResponse{Product: MapProduct(p)}, nil
}

func (h *ProductHandler) GetProduct(ctx context.Context, req *warehousev1.GetProductRequest) (*warehousev1.ProductResponse, error) {
	p, err := h.uc.GetProduct(ctx, req.Id)
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}
	if p == nil {
		return nil, h.errs.Status(ctx, product.ErrNotFound)
	}

	return &warehousev1.ProductResponse{Product: MapProduct(p)}, nil
}

func (h *ProductHandler) ListProducts(ctx context.Context, req *warehousev1.ListProductsRequest) (*warehousev1.ListProductsResponse, error) {
	filters := &dto.ProductFilters{
		SearchQuery: req.Query,
		SortBy:      req.SortBy,
		SortOrder:   req.SortOrder,
		Page:        int(req.Page),
		PageSize:    int(req.PageSize),
	}

	products, count, err := h.uc.ListProducts(ctx, filters)
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}

	out := make([]*warehousev1.Product, len(products))
	for i := range products {
		out[i] = MapProduct(&products[i])
	}

	return &warehousev1.ListProductsResponse{
		Products: out,
		Total:    int32(count),
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (h *ProductHandler) UpdateProduct(ctx context.Context, req *warehousev1.UpdateProductRequest) (*warehousev1.ProductResponse, error) {
	price, err := parsePrice(req.UnitPrice)
	if err != nil {
		return nil, h.errs.InvalidArgument(ctx, "unit_price")
	}

	input := &dto.UpdateProductInput{
		ID:        req.Id,
		Code:      strings.TrimSpace(req.Code),
		Name:      strings.TrimSpace(req.Name),
		Unit:      strings.TrimSpace(req.Unit),
		UnitPrice: price,
	}

	p, err := h.uc.UpdateProduct(ctx, input)
	if err != nil {
		h.logger.Warn("failed to update product", zap.String("id", req.Id), zap.Error(err))
		return nil, h.errs.Status(ctx, err)
	}

	return &warehousev1.ProductResponse{Product: MapProduct(p)}, nil
}

func (h *ProductHandler) DeleteProduct(ctx context.Context, req *warehousev1.DeleteProductRequest) (*emptypb.Empty, error) {
	if err := h.uc.DeleteProduct(ctx, req.Id); err != nil {
		return nil, h.errs.Status(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (h *ProductHandler) BulkDeleteProducts(ctx context.Context, req *warehousev1.BulkDeleteProductsRequest) (*warehousev1.BulkDeleteProductsResponse, error) {
	n, err := h.uc.BulkDeleteProducts(ctx, req.Ids)
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}
	return &warehousev1.BulkDeleteProductsResponse{Deleted: int32(n)}, nil
}

func (h *ProductHandler) ImportProducts(ctx context.Context, req *warehousev1.ImportRequest) (*warehousev1.ImportResponse, error) {
	rows, err := sheet.Read(req.FileName, req.Content)
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}

	res, err := h.uc.ImportProducts(ctx, rows)
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}

	h.logger.Info("products imported",
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

// parsePrice treats an empty string as zero.
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func MapProduct(m *model.Product) *warehousev1.Product {
	if m == nil {
		return nil
	}
	return &warehousev1.Product{
		Id:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		Unit:      m.Unit,
		UnitPrice: m.UnitPrice.StringFixed(2),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
