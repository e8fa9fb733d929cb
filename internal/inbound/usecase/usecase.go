package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-warehouse/internal/inbound"
	"github.com/fekuna/omnipos-warehouse/internal/inbound/dto"
	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/product"
	"github.com/fekuna/omnipos-warehouse/internal/sheet"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"github.com/fekuna/omnipos-warehouse/pkg/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Default column positions for headerless inbound sheets.
var importDefaults = sheet.Layout{
	sheet.FieldCode:     0,
	sheet.FieldQuantity: 1,
	sheet.FieldMonth:    2,
	sheet.FieldYear:     3,
}

type inboundUseCase struct {
	repo     inbound.Repository
	products product.Repository
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewInboundUseCase(repo inbound.Repository, products product.Repository, log logger.ZapLogger) inbound.UseCase {
	return &inboundUseCase{
		repo:     repo,
		products: products,
		logger:   log,
		now:      time.Now,
	}
}

// CreateInbound records a receipt. The product id is a weak reference and is
// not checked against the catalog.
func (uc *inboundUseCase) CreateInbound(ctx context.Context, input *dto.CreateInboundInput) (*model.InboundEntry, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	now := uc.now()
	e := &model.InboundEntry{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		CreatedAt: now,
	}
	e.SetDate(orNow(input.Date, now))

	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	uc.logger.Debug("inbound recorded", zap.String("product_id", e.ProductID), zap.Int("quantity", e.Quantity))
	return e, nil
}

func (uc *inboundUseCase) UpdateInbound(ctx context.Context, input *dto.UpdateInboundInput) (*model.InboundEntry, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	e, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, inbound.ErrNotFound
	}

	e.ProductID = input.ProductID
	e.Quantity = input.Quantity
	if !input.Date.IsZero() {
		e.SetDate(input.Date)
	}

	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (uc *inboundUseCase) DeleteInbound(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *inboundUseCase) ListInbound(ctx context.Context, filters *dto.InboundFilters) ([]model.InboundEntry, error) {
	return uc.repo.FindAll(ctx, filters)
}

// ImportInbound records one entry per row that names a known product code with
// a positive quantity. Other rows are counted as skipped. All accepted rows are
// committed in a single write.
func (uc *inboundUseCase) ImportInbound(ctx context.Context, rows [][]string) (*dto.ImportResult, error) {
	layout, data := sheet.Resolve(rows, importDefaults)
	result := &dto.ImportResult{}
	now := uc.now()

	entries := make([]model.InboundEntry, 0, len(data))
	for _, row := range data {
		code := layout.Get(row, sheet.FieldCode)
		if code == "" && isBlank(row) {
			continue
		}

		qty := sheet.ParseQuantity(layout.Get(row, sheet.FieldQuantity))
		if qty <= 0 {
			result.Skipped++
			continue
		}
		p, err := uc.products.FindByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if p == nil {
			uc.logger.Debug("skipping inbound row with unknown code", zap.String("code", code))
			result.Skipped++
			continue
		}

		e := model.InboundEntry{
			ID:        uuid.New().String(),
			ProductID: p.ID,
			Quantity:  qty,
			CreatedAt: now,
		}
		e.SetDate(rowDate(layout, row, now))
		entries = append(entries, e)
	}

	if err := uc.repo.CreateBatch(ctx, entries); err != nil {
		return nil, err
	}
	result.Imported = len(entries)

	uc.logger.Info("inbound imported", zap.Int("imported", result.Imported), zap.Int("skipped", result.Skipped))
	return result, nil
}

// rowDate uses the row's month and year when present, else the import time.
func rowDate(layout sheet.Layout, row []string, now time.Time) time.Time {
	month := sheet.ParseMonth(layout.Get(row, sheet.FieldMonth))
	year := sheet.ParseYear(layout.Get(row, sheet.FieldYear))
	if month == 0 && year == 0 {
		return now
	}
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
}

func orNow(d, now time.Time) time.Time {
	if d.IsZero() {
		return now
	}
	return d
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
