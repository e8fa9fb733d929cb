package outbound

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/outbound/dto"
	"github.com/fekuna/omnipos-warehouse/internal/stock"
)

var ErrNotFound = errors.New("outbound transaction not found")

// CheckFunc inspects a write before it lands. previous is the stored version
// of the same transaction, or nil when the transaction is new.
type CheckFunc func(previous *model.OutboundTransaction, ledger stock.Ledger) error

type Repository interface {
	// Save inserts or replaces txn by id. check runs against the same ledger
	// the write is applied to; if it fails nothing is written.
	Save(ctx context.Context, txn *model.OutboundTransaction, check CheckFunc) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.OutboundTransaction, error)
	FindAll(ctx context.Context, filters *dto.OutboundFilters) ([]model.OutboundTransaction, int, error)
}
