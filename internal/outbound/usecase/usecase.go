package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-warehouse/internal/document"
	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/outbound"
	"github.com/fekuna/omnipos-warehouse/internal/outbound/dto"
	"github.com/fekuna/omnipos-warehouse/internal/product"
	"github.com/fekuna/omnipos-warehouse/internal/reqctx"
	"github.com/fekuna/omnipos-warehouse/internal/stock"
	"github.com/fekuna/omnipos-warehouse/pkg/i18n"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"github.com/fekuna/omnipos-warehouse/pkg/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type outboundUseCase struct {
	repo     outbound.Repository
	products product.Repository
	settings outbound.SettingsSource
	logger   logger.ZapLogger
}

func NewOutboundUseCase(repo outbound.Repository, products product.Repository, settings outbound.SettingsSource, log logger.ZapLogger) outbound.UseCase {
	return &outboundUseCase{
		repo:     repo,
		products: products,
		settings: settings,
		logger:   log,
	}
}

func (uc *outboundUseCase) CreateOutbound(ctx context.Context, input *dto.CreateOutboundInput) (*model.OutboundTransaction, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	now := time.Now()
	txn := &model.OutboundTransaction{
		ID:        uuid.New().String(),
		Recipient: input.Recipient,
		Address:   input.Address,
		Date:      orNow(input.Date, now),
		Items:     buildItems(input.Items),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.repo.Save(ctx, txn, func(previous *model.OutboundTransaction, ledger stock.Ledger) error {
		return stock.ValidateOutboundWrite(ledger, *txn, nil)
	})
	if err != nil {
		uc.logRejection("outbound create rejected", txn.ID, err)
		return nil, err
	}

	uc.logger.Info("outbound recorded", zap.String("id", txn.ID), zap.Int("total_quantity", txn.TotalQuantity()))
	return txn, nil
}

// UpdateOutbound validates against the stored version of the same
// transaction, so quantities it already holds count as available.
func (uc *outboundUseCase) UpdateOutbound(ctx context.Context, input *dto.UpdateOutboundInput) (*model.OutboundTransaction, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	now := time.Now()
	txn := &model.OutboundTransaction{
		ID:        input.ID,
		Recipient: input.Recipient,
		Address:   input.Address,
		Date:      orNow(input.Date, now),
		Items:     buildItems(input.Items),
		UpdatedAt: now,
	}

	err := uc.repo.Save(ctx, txn, func(previous *model.OutboundTransaction, ledger stock.Ledger) error {
		if previous == nil {
			return outbound.ErrNotFound
		}
		if err := stock.ValidateOutboundWrite(ledger, *txn, previous); err != nil {
			return err
		}
		txn.CreatedAt = previous.CreatedAt
		return nil
	})
	if err != nil {
		uc.logRejection("outbound update rejected", txn.ID, err)
		return nil, err
	}

	return txn, nil
}

// DeleteOutbound is never blocked by stock: removing an outbound only returns goods.
func (uc *outboundUseCase) DeleteOutbound(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *outboundUseCase) GetOutbound(ctx context.Context, id string) (*model.OutboundTransaction, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *outboundUseCase) ListOutbound(ctx context.Context, filters *dto.OutboundFilters) ([]model.OutboundTransaction, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *outboundUseCase) RenderHandover(ctx context.Context, id string) (string, error) {
	txn, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if txn == nil {
		return "", outbound.ErrNotFound
	}

	ids := make([]string, 0, len(txn.Items))
	for _, it := range txn.Items {
		ids = append(ids, it.ProductID)
	}
	found, err := uc.products.FindByIDs(ctx, ids)
	if err != nil {
		return "", err
	}
	products := make(map[string]model.Product, len(found))
	for _, p := range found {
		products[p.ID] = p
	}

	var settings model.AppSettings
	if uc.settings != nil {
		settings = uc.settings.GetSettings(ctx)
	} else {
		settings = model.DefaultSettings()
	}

	return document.RenderHandover(document.HandoverData{
		Transaction:  *txn,
		Products:     products,
		Settings:     settings,
		UnknownLabel: i18n.T(reqctx.GetLocale(ctx), "unknown_product", nil),
	}), nil
}

func (uc *outboundUseCase) logRejection(msg, id string, err error) {
	var short *stock.InsufficientStockError
	if errors.As(err, &short) {
		uc.logger.Info(msg,
			zap.String("id", id),
			zap.String("product_id", short.ProductID),
			zap.Int("requested", short.Requested),
			zap.Int("available", short.Available),
		)
		return
	}
	uc.logger.Info(msg, zap.String("id", id), zap.Error(err))
}

func buildItems(in []dto.ItemInput) []model.OutboundItem {
	items := make([]model.OutboundItem, 0, len(in))
	for _, it := range in {
		id := it.ID
		if id == "" {
			id = uuid.New().String()
		}
		items = append(items, model.OutboundItem{ID: id, ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return items
}

func orNow(d, now time.Time) time.Time {
	if d.IsZero() {
		return now
	}
	return d
}
