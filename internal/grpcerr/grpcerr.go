// Package grpcerr converts domain errors into localized gRPC statuses.
package grpcerr

import (
	"context"
	"errors"
	"strconv"

	"github.com/fekuna/omnipos-warehouse/internal/export"
	"github.com/fekuna/omnipos-warehouse/internal/inbound"
	"github.com/fekuna/omnipos-warehouse/internal/outbound"
	"github.com/fekuna/omnipos-warehouse/internal/product"
	"github.com/fekuna/omnipos-warehouse/internal/report"
	"github.com/fekuna/omnipos-warehouse/internal/reqctx"
	"github.com/fekuna/omnipos-warehouse/internal/settings"
	"github.com/fekuna/omnipos-warehouse/internal/sheet"
	"github.com/fekuna/omnipos-warehouse/internal/stock"
	"github.com/fekuna/omnipos-warehouse/pkg/i18n"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"github.com/fekuna/omnipos-warehouse/pkg/validation"
	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const Domain = "warehouse"

// Mapper turns use case errors into gRPC status errors. Products, when set, is
// used to name the product in stock rejections.
type Mapper struct {
	Products product.Repository
	Logger   logger.ZapLogger
}

func NewMapper(products product.Repository, log logger.ZapLogger) *Mapper {
	return &Mapper{Products: products, Logger: log}
}

func (m *Mapper) Status(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	lang := reqctx.GetLocale(ctx)

	var short *stock.InsufficientStockError
	if errors.As(err, &short) {
		msg := i18n.T(lang, "insufficient_stock", map[string]any{
			"Product":   m.productLabel(ctx, short.ProductID),
			"Requested": short.Requested,
			"Available": short.Available,
		})
		return withInfo(codes.FailedPrecondition, msg, "INSUFFICIENT_STOCK", map[string]string{
			"product_id": short.ProductID,
			"requested":  strconv.Itoa(short.Requested),
			"available":  strconv.Itoa(short.Available),
		})
	}

	var dup *stock.DuplicateItemError
	if errors.As(err, &dup) {
		msg := i18n.T(lang, "duplicate_item", map[string]any{"Product": m.productLabel(ctx, dup.ProductID)})
		return withInfo(codes.InvalidArgument, msg, "DUPLICATE_ITEM", map[string]string{"product_id": dup.ProductID})
	}

	switch {
	case validation.IsValidationError(err):
		return status.Error(codes.InvalidArgument, i18n.T(lang, "invalid_input", map[string]any{"Detail": validation.Describe(err)}))
	case errors.Is(err, stock.ErrNoItems):
		return status.Error(codes.InvalidArgument, i18n.T(lang, "no_items", nil))
	case errors.Is(err, stock.ErrMissingProduct):
		return status.Error(codes.InvalidArgument, i18n.T(lang, "missing_product", nil))
	case errors.Is(err, stock.ErrBadQuantity),
		errors.Is(err, product.ErrNegativePrice),
		errors.Is(err, export.ErrUnknownFormat),
		errors.Is(err, report.ErrUnknownReport),
		errors.Is(err, sheet.ErrUnsupportedFormat),
		errors.Is(err, settings.ErrSyncNotConfigured):
		return status.Error(codes.InvalidArgument, i18n.T(lang, "invalid_input", map[string]any{"Detail": err.Error()}))
	case errors.Is(err, product.ErrDuplicateCode):
		return status.Error(codes.AlreadyExists, i18n.T(lang, "duplicate_code", map[string]any{"Code": codeOf(err)}))
	case errors.Is(err, product.ErrNotFound):
		return status.Error(codes.NotFound, i18n.T(lang, "not_found", map[string]any{"Entity": "Product"}))
	case errors.Is(err, inbound.ErrNotFound):
		return status.Error(codes.NotFound, i18n.T(lang, "not_found", map[string]any{"Entity": "Inbound entry"}))
	case errors.Is(err, outbound.ErrNotFound):
		return status.Error(codes.NotFound, i18n.T(lang, "not_found", map[string]any{"Entity": "Outbound transaction"}))
	case errors.Is(err, settings.ErrSyncUnreachable):
		return status.Error(codes.Unavailable, i18n.T(lang, "sync_unreachable", map[string]any{"Detail": err.Error()}))
	}

	if m.Logger != nil {
		m.Logger.Error("unhandled error", zap.Error(err))
	}
	return status.Error(codes.Internal, err.Error())
}

// NotFound reports a missing entity the way Status does for repository misses.
func (m *Mapper) NotFound(ctx context.Context, entity string) error {
	return status.Error(codes.NotFound, i18n.T(reqctx.GetLocale(ctx), "not_found", map[string]any{"Entity": entity}))
}

// InvalidArgument reports malformed request fields.
func (m *Mapper) InvalidArgument(ctx context.Context, detail string) error {
	return status.Error(codes.InvalidArgument, i18n.T(reqctx.GetLocale(ctx), "invalid_input", map[string]any{"Detail": detail}))
}

func (m *Mapper) productLabel(ctx context.Context, id string) string {
	if m.Products == nil {
		return id
	}
	p, err := m.Products.FindByID(ctx, id)
	if err != nil || p == nil {
		return i18n.T(reqctx.GetLocale(ctx), "unknown_product", nil)
	}
	return p.Code + " " + p.Name
}

func withInfo(code codes.Code, msg, reason string, meta map[string]string) error {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: Domain, Metadata: meta})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

func codeOf(err error) string {
	var ce *product.CodeError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
