package repository

import (
	"context"
	"sort"

	"github.com/fekuna/omnipos-warehouse/internal/inbound"
	"github.com/fekuna/omnipos-warehouse/internal/inbound/dto"
	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/store"
)

type MemoryRepository struct {
	store *store.Store
}

func NewMemoryRepository(st *store.Store) *MemoryRepository {
	return &MemoryRepository{store: st}
}

func (r *MemoryRepository) Create(ctx context.Context, e *model.InboundEntry) error {
	return r.CreateBatch(ctx, []model.InboundEntry{*e})
}

func (r *MemoryRepository) CreateBatch(ctx context.Context, entries []model.InboundEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.store.Update(func(cur *store.Snapshot) (*store.Snapshot, error) {
		next := make([]model.InboundEntry, 0, len(cur.Inbound)+len(entries))
		next = append(next, cur.Inbound...)
		next = append(next, entries...)
		return cur.WithInbound(next), nil
	})
}

func (r *MemoryRepository) Update(ctx context.Context, e *model.InboundEntry) error {
	return r.store.Update(func(cur *store.Snapshot) (*store.Snapshot, error) {
		idx := indexOf(cur.Inbound, e.ID)
		if idx < 0 {
			return nil, inbound.ErrNotFound
		}
		next := make([]model.InboundEntry, len(cur.Inbound))
		copy(next, cur.Inbound)
		next[idx] = *e
		return cur.WithInbound(next), nil
	})
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	return r.store.Update(func(cur *store.Snapshot) (*store.Snapshot, error) {
		idx := indexOf(cur.Inbound, id)
		if idx < 0 {
			return nil, inbound.ErrNotFound
		}
		next := make([]model.InboundEntry, 0, len(cur.Inbound)-1)
		next = append(next, cur.Inbound[:idx]...)
		next = append(next, cur.Inbound[idx+1:]...)
		return cur.WithInbound(next), nil
	})
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*model.InboundEntry, error) {
	snap := r.store.Snapshot()
	idx := indexOf(snap.Inbound, id)
	if idx < 0 {
		return nil, nil
	}
	e := snap.Inbound[idx]
	return &e, nil
}

// FindAll returns matching entries, newest date first.
func (r *MemoryRepository) FindAll(ctx context.Context, f *dto.InboundFilters) ([]model.InboundEntry, error) {
	if f == nil {
		f = &dto.InboundFilters{}
	}
	snap := r.store.Snapshot()
	out := make([]model.InboundEntry, 0, len(snap.Inbound))
	for _, e := range snap.Inbound {
		if f.ProductID != "" && e.ProductID != f.ProductID {
			continue
		}
		if f.Year != 0 && e.Year != f.Year {
			continue
		}
		if f.Month != 0 && e.Month != f.Month {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func indexOf(entries []model.InboundEntry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
