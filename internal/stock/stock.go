// Package stock derives current stock from the inbound and outbound ledgers and
// decides whether a proposed outbound write is admissible. It holds no state:
// every answer is recomputed from the ledger it is given.
package stock

import (
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-warehouse/internal/model"
)

var (
	ErrNoItems        = errors.New("outbound transaction has no items")
	ErrMissingProduct = errors.New("outbound item has no product selected")
	ErrDuplicateItem  = errors.New("product appears in more than one outbound item")
	ErrBadQuantity    = errors.New("outbound item quantity must be positive")
)

// InsufficientStockError rejects an outbound write. Available already includes
// whatever the previous version of the same transaction held for the product.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}

// DuplicateItemError names the product that was selected twice.
type DuplicateItemError struct {
	ProductID string
}

func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDuplicateItem.Error(), e.ProductID)
}

func (e *DuplicateItemError) Unwrap() error { return ErrDuplicateItem }

// Ledger is a read-only view over both movement ledgers.
type Ledger struct {
	Inbound  []model.InboundEntry
	Outbound []model.OutboundTransaction
}

// CurrentStock returns inbound total minus outbound total for productID.
func CurrentStock(l Ledger, productID string) int {
	total := 0
	for _, in := range l.Inbound {
		if in.ProductID == productID {
			total += in.Quantity
		}
	}
	for i := range l.Outbound {
		total -= l.Outbound[i].QuantityOf(productID)
	}
	return total
}

// Levels computes current stock for every product referenced by either ledger
// in a single pass. Each value equals CurrentStock for that id.
func Levels(l Ledger) map[string]int {
	levels := make(map[string]int)
	for _, in := range l.Inbound {
		levels[in.ProductID] += in.Quantity
	}
	for _, out := range l.Outbound {
		for _, it := range out.Items {
			levels[it.ProductID] -= it.Quantity
		}
	}
	return levels
}

// ValidateOutboundWrite checks a proposed transaction against the ledger.
// previous is the stored version when editing and nil when creating; its
// quantities are added back so a transaction never blocks itself.
//
// Structural problems (no items, an unselected product, a non-positive
// quantity, a product listed twice)
// are reported before any stock is checked. Stock is then checked in item
// order and the first shortfall is returned as *InsufficientStockError.
// The ledger is never modified.
func ValidateOutboundWrite(l Ledger, proposed model.OutboundTransaction, previous *model.OutboundTransaction) error {
	if err := validateShape(proposed); err != nil {
		return err
	}

	for _, it := range proposed.Items {
		available := CurrentStock(l, it.ProductID) + previous.QuantityOf(it.ProductID)
		if it.Quantity > available {
			return &InsufficientStockError{
				ProductID: it.ProductID,
				Requested: it.Quantity,
				Available: available,
			}
		}
	}
	return nil
}

func validateShape(t model.OutboundTransaction) error {
	if len(t.Items) == 0 {
		return ErrNoItems
	}
	for _, it := range t.Items {
		if it.ProductID == "" {
			return ErrMissingProduct
		}
	}
	for _, it := range t.Items {
		if it.Quantity <= 0 {
			return ErrBadQuantity
		}
	}
	seen := make(map[string]struct{}, len(t.Items))
	for _, it := range t.Items {
		if _, dup := seen[it.ProductID]; dup {
			return &DuplicateItemError{ProductID: it.ProductID}
		}
		seen[it.ProductID] = struct{}{}
	}
	return nil
}
