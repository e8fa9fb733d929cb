package model

import "time"

type OutboundTransaction struct {
	ID        string         `json:"id"`
	Recipient string         `json:"recipient"`
	Date      time.Time      `json:"date"`
	Address   string         `json:"address"`
	Items     []OutboundItem `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type OutboundItem struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// QuantityOf sums the quantity this transaction holds for productID. A nil
// transaction holds nothing.
func (t *OutboundTransaction) QuantityOf(productID string) int {
	if t == nil {
		return 0
	}
	total := 0
	for _, it := range t.Items {
		if it.ProductID == productID {
			total += it.Quantity
		}
	}
	return total
}

// TotalQuantity sums all line quantities.
func (t *OutboundTransaction) TotalQuantity() int {
	total := 0
	for _, it := range t.Items {
		total += it.Quantity
	}
	return total
}

// Clone returns a deep copy so callers can edit without touching shared snapshots.
func (t OutboundTransaction) Clone() OutboundTransaction {
	items := make([]OutboundItem, len(t.Items))
	copy(items, t.Items)
	t.Items = items
	return t
}
