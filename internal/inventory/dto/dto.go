package dto

import (
	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/shopspring/decimal"
)

const (
	SortStockDesc = "stock_desc"
	SortStockAsc  = "stock_asc"
	SortCode      = "code"
	SortName      = "name"
)

type StockFilters struct {
	SearchQuery string
	SortBy      string // defaults to stock_desc
}

// StockLevel is a product with its derived stock and stock value (stock x unit price).
type StockLevel struct {
	Product model.Product
	Stock   int
	Value   decimal.Decimal
}

type ValidateItem struct {
	ProductID string
	Quantity  int
}

// ValidateOutboundInput proposes items for a new transaction, or for the stored
// transaction TransactionID when editing.
type ValidateOutboundInput struct {
	TransactionID string
	Items         []ValidateItem
}
