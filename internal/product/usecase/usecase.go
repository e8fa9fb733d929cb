package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/product"
	"github.com/fekuna/omnipos-warehouse/internal/product/dto"
	"github.com/fekuna/omnipos-warehouse/internal/sheet"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"github.com/fekuna/omnipos-warehouse/pkg/search"
	"github.com/fekuna/omnipos-warehouse/pkg/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const productMapping = `{
	"mappings": {
		"properties": {
			"code": { "type": "keyword" },
			"name": { "type": "text" },
			"unit": { "type": "keyword" },
			"unit_price": { "type": "double" },
			"created_at": { "type": "date" }
		}
	}
}`

// Default column positions for headerless product sheets.
var importDefaults = sheet.Layout{
	sheet.FieldCode:  0,
	sheet.FieldName:  1,
	sheet.FieldUnit:  2,
	sheet.FieldPrice: 3,
}

type productUseCase struct {
	repo   product.Repository
	es     *search.Client
	index  string
	logger logger.ZapLogger
}

// NewProductUseCase wires the catalog. es may be nil, in which case search runs in memory only.
func NewProductUseCase(repo product.Repository, es *search.Client, index string, log logger.ZapLogger) product.UseCase {
	if index == "" {
		index = "warehouse_products"
	}
	return &productUseCase{
		repo:   repo,
		es:     es,
		index:  index,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.UnitPrice.IsNegative() {
		return nil, product.ErrNegativePrice
	}

	now := time.Now()
	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Code:      input.Code,
		Name:      input.Name,
		Unit:      input.Unit,
		UnitPrice: input.UnitPrice,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	if filters == nil {
		filters = &dto.ProductFilters{}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		products, total, err := uc.searchElastic(ctx, filters)
		if err == nil {
			return products, total, nil
		}
		uc.logger.Warn("ES search failed, falling back to memory", zap.Error(err))
	}

	return uc.repo.FindAll(ctx, filters)
}

// searchElastic only takes ids from the index. Products are read from the
// store so a stale index never returns deleted or outdated rows.
func (uc *productUseCase) searchElastic(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	q := map[string]any{
		"query": map[string]any{
			"query_string": map[string]any{
				"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
				"fields": []string{"name^3", "code"},
			},
		},
	}
	if filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		q["from"] = (page - 1) * filters.PageSize
		q["size"] = filters.PageSize
	}

	res, err := uc.es.Search(ctx, uc.index, q)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	products, err := uc.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	return products, resolvedTotal(res.Hits.Total.Value, len(ids), len(products)), nil
}

// resolvedTotal discounts index hits on this page that no longer resolve to a
// stored product. Stale hits on other pages are not visible here.
func resolvedTotal(reported, hits, resolved int) int {
	total := reported - (hits - resolved)
	if total < resolved {
		total = resolved
	}
	return total
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.UnitPrice.IsNegative() {
		return nil, product.ErrNegativePrice
	}

	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}

	p.Code = input.Code
	p.Name = input.Name
	p.Unit = input.Unit
	p.UnitPrice = input.UnitPrice
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

// DeleteProduct does not touch ledger entries that reference the product.
func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return product.ErrNotFound
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.removeFromElastic(context.Background(), []string{id})

	return nil
}

func (uc *productUseCase) BulkDeleteProducts(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := uc.repo.BulkDelete(ctx, ids)
	if err != nil {
		return 0, err
	}

	go uc.removeFromElastic(context.Background(), ids)

	return n, nil
}

// ImportProducts adds one product per valid row. Rows missing code or name,
// with an unparsable or negative price, or whose code is already taken are skipped.
func (uc *productUseCase) ImportProducts(ctx context.Context, rows [][]string) (*dto.ImportResult, error) {
	layout, data := sheet.Resolve(rows, importDefaults)
	result := &dto.ImportResult{}

	for _, row := range data {
		if isBlank(row) {
			continue
		}

		input := &dto.CreateProductInput{
			Code: layout.Get(row, sheet.FieldCode),
			Name: layout.Get(row, sheet.FieldName),
			Unit: layout.Get(row, sheet.FieldUnit),
		}
		if input.Unit == "" {
			input.Unit = "pcs"
		}
		price, err := sheet.ParsePrice(layout.Get(row, sheet.FieldPrice))
		if err != nil {
			result.Skipped++
			continue
		}
		input.UnitPrice = price

		if _, err := uc.CreateProduct(ctx, input); err != nil {
			uc.logger.Debug("skipping product row", zap.String("code", input.Code), zap.Error(err))
			result.Skipped++
			continue
		}
		result.Imported++
	}

	uc.logger.Info("products imported", zap.Int("imported", result.Imported), zap.Int("skipped", result.Skipped))
	return result, nil
}

type productDocument struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	UnitPrice float64   `json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	_ = uc.es.CreateIndex(ctx, uc.index, productMapping)

	doc := productDocument{
		Code:      p.Code,
		Name:      p.Name,
		Unit:      p.Unit,
		UnitPrice: p.UnitPrice.InexactFloat64(),
		CreatedAt: p.CreatedAt,
	}
	if err := uc.es.Index(ctx, uc.index, p.ID, doc); err != nil {
		uc.logger.Error("failed to index product", zap.String("id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) removeFromElastic(ctx context.Context, ids []string) {
	if uc.es == nil {
		return
	}
	for _, id := range ids {
		if err := uc.es.Delete(ctx, uc.index, id); err != nil {
			uc.logger.Error("failed to delete product from ES", zap.String("id", id), zap.Error(err))
		}
	}
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
