package inventory

import (
	"context"

	"github.com/fekuna/omnipos-warehouse/internal/store"
)

// Repository exposes the catalog and both ledgers as one consistent view.
type Repository interface {
	Snapshot(ctx context.Context) (*store.Snapshot, error)
}
