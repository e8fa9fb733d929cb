package repository

import (
	"context"

	"github.com/fekuna/omnipos-warehouse/internal/store"
)

type MemoryRepository struct {
	store *store.Store
}

func NewMemoryRepository(st *store.Store) *MemoryRepository {
	return &MemoryRepository{store: st}
}

func (r *MemoryRepository) Snapshot(ctx context.Context) (*store.Snapshot, error) {
	return r.store.Snapshot(), nil
}
