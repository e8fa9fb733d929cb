package stock

import (
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-warehouse/internal/model"
)

func inbound(productID string, qty int) model.InboundEntry {
	return model.InboundEntry{ID: "in-" + productID, ProductID: productID, Quantity: qty, Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func outbound(id string, items ...model.OutboundItem) model.OutboundTransaction {
	return model.OutboundTransaction{ID: id, Recipient: "Dinas", Items: items}
}

func item(productID string, qty int) model.OutboundItem {
	return model.OutboundItem{ID: "it-" + productID, ProductID: productID, Quantity: qty}
}

func TestCurrentStock(t *testing.T) {
	l := Ledger{
		Inbound: []model.InboundEntry{inbound("p1", 20), inbound("p1", 5), inbound("p2", 7)},
		Outbound: []model.OutboundTransaction{
			outbound("t1", item("p1", 10), item("p2", 3)),
			outbound("t2", item("p1", 4)),
		},
	}

	tests := []struct {
		product string
		want    int
	}{
		{"p1", 11},
		{"p2", 4},
		{"unknown", 0},
	}
	for _, tt := range tests {
		if got := CurrentStock(l, tt.product); got != tt.want {
			t.Fatalf("CurrentStock(%s) = %d, want %d", tt.product, got, tt.want)
		}
	}

	levels := Levels(l)
	for _, p := range []string{"p1", "p2"} {
		if levels[p] != CurrentStock(l, p) {
			t.Fatalf("Levels[%s] = %d, CurrentStock = %d", p, levels[p], CurrentStock(l, p))
		}
	}
}

func TestInboundConservation(t *testing.T) {
	l := Ledger{
		Inbound:  []model.InboundEntry{inbound("p1", 3)},
		Outbound: []model.OutboundTransaction{outbound("t1", item("p1", 2))},
	}
	before := CurrentStock(l, "p1")
	l.Inbound = append(l.Inbound, inbound("p1", 9))
	if got := CurrentStock(l, "p1"); got != before+9 {
		t.Fatalf("stock after inbound = %d, want %d", got, before+9)
	}
}

func TestValidateOutboundWrite_NewTransaction(t *testing.T) {
	l := Ledger{Inbound: []model.InboundEntry{inbound("p1", 20), inbound("p2", 1)}}

	if err := ValidateOutboundWrite(l, outbound("t1", item("p1", 20)), nil); err != nil {
		t.Fatalf("exact stock should be accepted: %v", err)
	}

	err := ValidateOutboundWrite(l, outbound("t1", item("p1", 21)), nil)
	var rej *InsufficientStockError
	if !errors.As(err, &rej) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if rej.ProductID != "p1" || rej.Requested != 21 || rej.Available != 20 {
		t.Fatalf("unexpected rejection %+v", rej)
	}
}

func TestValidateOutboundWrite_FirstFailingItemInListOrder(t *testing.T) {
	l := Ledger{Inbound: []model.InboundEntry{inbound("p1", 1), inbound("p2", 1), inbound("p3", 1)}}

	err := ValidateOutboundWrite(l, outbound("t1", item("p1", 1), item("p3", 5), item("p2", 5)), nil)
	var rej *InsufficientStockError
	if !errors.As(err, &rej) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if rej.ProductID != "p3" {
		t.Fatalf("expected first failing item p3, got %s", rej.ProductID)
	}
}

func TestValidateOutboundWrite_EditSelfExclusion(t *testing.T) {
	committed := outbound("t1", item("p1", 10))
	l := Ledger{
		Inbound:  []model.InboundEntry{inbound("p1", 10)},
		Outbound: []model.OutboundTransaction{committed},
	}
	if got := CurrentStock(l, "p1"); got != 0 {
		t.Fatalf("precondition: stock = %d, want 0", got)
	}

	if err := ValidateOutboundWrite(l, outbound("t1", item("p1", 10)), &committed); err != nil {
		t.Fatalf("unchanged edit must be accepted: %v", err)
	}

	err := ValidateOutboundWrite(l, outbound("t1", item("p1", 11)), &committed)
	var rej *InsufficientStockError
	if !errors.As(err, &rej) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if rej.Available != 10 || rej.Requested != 11 {
		t.Fatalf("unexpected rejection %+v", rej)
	}
}

func TestValidateOutboundWrite_EditAddsBackOnlySameProduct(t *testing.T) {
	committed := outbound("t1", item("p1", 5))
	l := Ledger{
		Inbound:  []model.InboundEntry{inbound("p1", 5), inbound("p2", 2)},
		Outbound: []model.OutboundTransaction{committed},
	}

	// switching the line to p2 frees p1 but gives nothing back for p2
	err := ValidateOutboundWrite(l, outbound("t1", item("p2", 3)), &committed)
	var rej *InsufficientStockError
	if !errors.As(err, &rej) || rej.Available != 2 {
		t.Fatalf("expected rejection with available 2, got %v", err)
	}
}

func TestValidateOutboundWrite_Shape(t *testing.T) {
	l := Ledger{Inbound: []model.InboundEntry{inbound("p1", 100)}}

	tests := []struct {
		name string
		txn  model.OutboundTransaction
		want error
	}{
		{"no items", outbound("t"), ErrNoItems},
		{"missing product", outbound("t", item("p1", 1), item("", 1)), ErrMissingProduct},
		{"zero quantity", outbound("t", item("p1", 0)), ErrBadQuantity},
		{"duplicate product", outbound("t", item("p1", 1), item("p1", 2)), ErrDuplicateItem},
		// the missing selection is reported even though p2 has no stock at all
		{"missing before stock", outbound("t", item("p2", 50), item("", 1)), ErrMissingProduct},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutboundWrite(l, tt.txn, nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

// Available to an edit is stock on hand plus what the edited transaction
// already holds, so 15 passes here where a stock-on-hand-only check rejects it.
func TestScenarioEditAgainstFixedInbound(t *testing.T) {
	l := Ledger{Inbound: []model.InboundEntry{inbound("P1", 20)}}

	t1 := outbound("T1", item("P1", 10))
	if err := ValidateOutboundWrite(l, t1, nil); err != nil {
		t.Fatalf("create T1: %v", err)
	}
	l.Outbound = []model.OutboundTransaction{t1}
	if got := CurrentStock(l, "P1"); got != 10 {
		t.Fatalf("stock after T1 = %d, want 10", got)
	}

	// T1 holds 10 and 10 remain in the warehouse, so up to 20 is admissible.
	if err := ValidateOutboundWrite(l, outbound("T1", item("P1", 15)), &t1); err != nil {
		t.Fatalf("edit to 15 should be accepted: %v", err)
	}

	err := ValidateOutboundWrite(l, outbound("T1", item("P1", 21)), &t1)
	var rej *InsufficientStockError
	if !errors.As(err, &rej) {
		t.Fatalf("edit to 21 should be rejected, got %v", err)
	}
	if rej.Available != 20 {
		t.Fatalf("available = %d, want 20", rej.Available)
	}

	edited := outbound("T1", item("P1", 5))
	if err := ValidateOutboundWrite(l, edited, &t1); err != nil {
		t.Fatalf("edit to 5 should be accepted: %v", err)
	}
	l.Outbound = []model.OutboundTransaction{edited}
	if got := CurrentStock(l, "P1"); got != 15 {
		t.Fatalf("stock after edit = %d, want 15", got)
	}
}
