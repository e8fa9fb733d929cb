package model

import "github.com/shopspring/decimal"

// Product is a catalog item. Code is the user-assigned business key and is
// unique across the catalog (exact, case-sensitive match).
type Product struct {
	BaseModel
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
