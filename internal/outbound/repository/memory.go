package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/outbound"
	"github.com/fekuna/omnipos-warehouse/internal/outbound/dto"
	"github.com/fekuna/omnipos-warehouse/internal/store"
)

type MemoryRepository struct {
	store *store.Store
}

func NewMemoryRepository(st *store.Store) *MemoryRepository {
	return &MemoryRepository{store: st}
}

func (r *MemoryRepository) Save(ctx context.Context, txn *model.OutboundTransaction, check outbound.CheckFunc) error {
	return r.store.Update(func(cur *store.Snapshot) (*store.Snapshot, error) {
		idx := indexOf(cur.Outbound, txn.ID)

		var previous *model.OutboundTransaction
		if idx >= 0 {
			p := cur.Outbound[idx].Clone()
			previous = &p
		}
		if check != nil {
			if err := check(previous, cur.Ledger()); err != nil {
				return nil, err
			}
		}

		next := make([]model.OutboundTransaction, len(cur.Outbound), len(cur.Outbound)+1)
		copy(next, cur.Outbound)
		if idx >= 0 {
			next[idx] = txn.Clone()
		} else {
			next = append(next, txn.Clone())
		}
		return cur.WithOutbound(next), nil
	})
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	return r.store.Update(func(cur *store.Snapshot) (*store.Snapshot, error) {
		idx := indexOf(cur.Outbound, id)
		if idx < 0 {
			return nil, outbound.ErrNotFound
		}
		next := make([]model.OutboundTransaction, 0, len(cur.Outbound)-1)
		next = append(next, cur.Outbound[:idx]...)
		next = append(next, cur.Outbound[idx+1:]...)
		return cur.WithOutbound(next), nil
	})
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*model.OutboundTransaction, error) {
	snap := r.store.Snapshot()
	idx := indexOf(snap.Outbound, id)
	if idx < 0 {
		return nil, nil
	}
	t := snap.Outbound[idx].Clone()
	return &t, nil
}

// FindAll returns matching transactions newest first, with the unpaged total.
func (r *MemoryRepository) FindAll(ctx context.Context, f *dto.OutboundFilters) ([]model.OutboundTransaction, int, error) {
	if f == nil {
		f = &dto.OutboundFilters{}
	}
	snap := r.store.Snapshot()
	q := strings.ToLower(strings.TrimSpace(f.SearchQuery))

	out := make([]model.OutboundTransaction, 0, len(snap.Outbound))
	for _, t := range snap.Outbound {
		if f.Year != 0 && t.Date.Year() != f.Year {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(t.Recipient), q) && !strings.Contains(strings.ToLower(t.Address), q) {
			continue
		}
		out = append(out, t.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })

	total := len(out)
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * f.PageSize
		if start > total {
			start = total
		}
		end := start + f.PageSize
		if end > total {
			end = total
		}
		out = out[start:end]
	}
	return out, total, nil
}

func indexOf(txns []model.OutboundTransaction, id string) int {
	for i, t := range txns {
		if t.ID == id {
			return i
		}
	}
	return -1
}
