package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/product"
	"github.com/fekuna/omnipos-warehouse/internal/product/dto"
	"github.com/fekuna/omnipos-warehouse/internal/store"
)

type MemoryRepository struct {
	store *store.Store
}

func NewMemoryRepository(st *store.Store) *MemoryRepository {
	return &MemoryRepository{store: st}
}

func (r *MemoryRepository) Create(ctx context.Context, p *model.Product) error {
	return r.store.Update(func(cur *store.Snapshot) (*store.Snapshot, error) {
		if codeTaken(cur.Products, p.Code, "") {
			return nil, &product.CodeError{Code: p.Code}
		}
		products := make([]model.Product, 0, len(cur.Products)+1)
		products = append(products, cur.Products...)
		products = append(products, *p)
		return cur.WithProducts(products), nil
	})
}

func (r *MemoryRepository) Update(ctx context.Context, p *model.Product) error {
	return r.store.Update(func(cur *store.Snapshot) (*store.Snapshot, error) {
		idx := indexOf(cur.Products, p.ID)
		if idx < 0 {
			return nil, product.ErrNotFound
		}
		if codeTaken(cur.Products, p.Code, p.ID) {
			return nil, &product.CodeError{Code: p.Code}
		}
		products := make([]model.Product, len(cur.Products))
		copy(products, cur.Products)
		products[idx] = *p
		return cur.WithProducts(products), nil
	})
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	p, ok := r.store.Snapshot().ProductByID(id)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *MemoryRepository) FindByCode(ctx context.Context, code string) (*model.Product, error) {
	p, ok := r.store.Snapshot().ProductByCode(code)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// FindByIDs keeps the order of ids and skips ids that no longer exist.
func (r *MemoryRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	idx := r.store.Snapshot().ProductIndex()
	out := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := idx[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *MemoryRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	snap := r.store.Snapshot()

	items := make([]model.Product, 0, len(snap.Products))
	q := strings.ToLower(strings.TrimSpace(f.SearchQuery))
	for _, p := range snap.Products {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Code), q) {
			continue
		}
		items = append(items, p)
	}

	sortProducts(items, f.SortBy, f.SortOrder)

	count := len(items)
	return paginate(items, f.Page, f.PageSize), count, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.BulkDelete(ctx, []string{id})
	return err
}

// BulkDelete removes every product in ids. Ledger entries referencing them are left alone.
func (r *MemoryRepository) BulkDelete(ctx context.Context, ids []string) (int, error) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	removed := 0
	err := r.store.Update(func(cur *store.Snapshot) (*store.Snapshot, error) {
		removed = 0
		products := make([]model.Product, 0, len(cur.Products))
		for _, p := range cur.Products {
			if _, ok := drop[p.ID]; ok {
				removed++
				continue
			}
			products = append(products, p)
		}
		return cur.WithProducts(products), nil
	})
	return removed, err
}

func codeTaken(products []model.Product, code, excludeID string) bool {
	for _, p := range products {
		if p.Code == code && p.ID != excludeID {
			return true
		}
	}
	return false
}

func indexOf(products []model.Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func sortProducts(items []model.Product, sortBy, order string) {
	desc := strings.ToLower(order) == "desc"
	var less func(a, b model.Product) bool
	// Prevent unknown sort keys from changing behaviour: fall back to code.
	switch sortBy {
	case "name":
		less = func(a, b model.Product) bool { return a.Name < b.Name }
	case "price":
		less = func(a, b model.Product) bool { return a.UnitPrice.LessThan(b.UnitPrice) }
	case "created_at":
		less = func(a, b model.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		less = func(a, b model.Product) bool { return a.Code < b.Code }
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func paginate(items []model.Product, page, pageSize int) []model.Product {
	if pageSize <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	if offset >= len(items) {
		return []model.Product{}
	}
	end := offset + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
