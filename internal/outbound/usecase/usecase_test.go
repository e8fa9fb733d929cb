package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/outbound"
	"github.com/fekuna/omnipos-warehouse/internal/outbound/dto"
	"github.com/fekuna/omnipos-warehouse/internal/outbound/repository"
	productrepo "github.com/fekuna/omnipos-warehouse/internal/product/repository"
	"github.com/fekuna/omnipos-warehouse/internal/stock"
	"github.com/fekuna/omnipos-warehouse/internal/store"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"google.golang.org/grpc/metadata"
)

type staticSettings model.AppSettings

func (s staticSettings) GetSettings(ctx context.Context) model.AppSettings {
	return model.AppSettings(s)
}

func newTestUseCase(inbound ...model.InboundEntry) (outbound.UseCase, *store.Store) {
	st := store.NewWith(store.Snapshot{
		Products: []model.Product{
			{BaseModel: model.BaseModel{ID: "p1"}, Code: "BRG-01", Name: "Paper", Unit: "box"},
			{BaseModel: model.BaseModel{ID: "p2"}, Code: "BRG-02", Name: "Ink", Unit: "pcs"},
		},
		Inbound: inbound,
	})
	settings := staticSettings(model.AppSettings{
		Branding:         model.Branding{CompanyName: "ACME"},
		HandoverTemplate: "{{company_name}}:{{recipient}}:{{items_table}}",
	})
	uc := NewOutboundUseCase(repository.NewMemoryRepository(st), productrepo.NewMemoryRepository(st), settings, logger.NewNop())
	return uc, st
}

func currentStock(st *store.Store, id string) int {
	return stock.CurrentStock(st.Snapshot().Ledger(), id)
}

func TestScenarioEditSelfExclusion(t *testing.T) {
	uc, st := newTestUseCase(model.InboundEntry{ID: "in1", ProductID: "p1", Quantity: 20})
	ctx := context.Background()

	t1, err := uc.CreateOutbound(ctx, &dto.CreateOutboundInput{
		Recipient: "School A",
		Items:     []dto.ItemInput{{ProductID: "p1", Quantity: 10}},
	})
	if err != nil {
		t.Fatalf("create T1: %v", err)
	}
	if got := currentStock(st, "p1"); got != 10 {
		t.Fatalf("stock after T1 = %d, want 10", got)
	}

	// T1 already holds 10, so 10 + 10 are available to it.
	_, err = uc.UpdateOutbound(ctx, &dto.UpdateOutboundInput{
		ID: t1.ID, Recipient: "School A",
		Items: []dto.ItemInput{{ProductID: "p1", Quantity: 21}},
	})
	var short *stock.InsufficientStockError
	if !errors.As(err, &short) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if short.Available != 20 || short.Requested != 21 || short.ProductID != "p1" {
		t.Fatalf("unexpected rejection %+v", short)
	}
	if got := currentStock(st, "p1"); got != 10 {
		t.Fatalf("rejected edit changed stock to %d", got)
	}

	if _, err := uc.UpdateOutbound(ctx, &dto.UpdateOutboundInput{
		ID: t1.ID, Recipient: "School A",
		Items: []dto.ItemInput{{ProductID: "p1", Quantity: 5}},
	}); err != nil {
		t.Fatalf("edit to 5: %v", err)
	}
	if got := currentStock(st, "p1"); got != 15 {
		t.Fatalf("stock after edit = %d, want 15", got)
	}

	stored, _ := uc.GetOutbound(ctx, t1.ID)
	if !stored.CreatedAt.Equal(t1.CreatedAt) {
		t.Fatalf("edit lost CreatedAt")
	}
}

func TestEditUnchangedWhenStockFullyConsumed(t *testing.T) {
	uc, st := newTestUseCase(model.InboundEntry{ID: "in1", ProductID: "p1", Quantity: 10})
	ctx := context.Background()

	t1, err := uc.CreateOutbound(ctx, &dto.CreateOutboundInput{
		Recipient: "R", Items: []dto.ItemInput{{ProductID: "p1", Quantity: 10}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := currentStock(st, "p1"); got != 0 {
		t.Fatalf("stock = %d, want 0", got)
	}

	if _, err := uc.UpdateOutbound(ctx, &dto.UpdateOutboundInput{
		ID: t1.ID, Recipient: "R", Items: []dto.ItemInput{{ProductID: "p1", Quantity: 10}},
	}); err != nil {
		t.Fatalf("unchanged edit rejected: %v", err)
	}

	_, err = uc.UpdateOutbound(ctx, &dto.UpdateOutboundInput{
		ID: t1.ID, Recipient: "R", Items: []dto.ItemInput{{ProductID: "p1", Quantity: 11}},
	})
	var short *stock.InsufficientStockError
	if !errors.As(err, &short) || short.Available != 10 {
		t.Fatalf("expected rejection with available 10, got %v", err)
	}
}

func TestCreateRejectsAndLeavesLedgerUnchanged(t *testing.T) {
	uc, st := newTestUseCase(
		model.InboundEntry{ID: "in1", ProductID: "p1", Quantity: 5},
		model.InboundEntry{ID: "in2", ProductID: "p2", Quantity: 1},
	)
	before := st.Snapshot()

	_, err := uc.CreateOutbound(context.Background(), &dto.CreateOutboundInput{
		Recipient: "R",
		Items: []dto.ItemInput{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p2", Quantity: 4},
		},
	})
	var short *stock.InsufficientStockError
	if !errors.As(err, &short) || short.ProductID != "p2" || short.Available != 1 {
		t.Fatalf("expected p2 rejection, got %v", err)
	}
	if st.Snapshot() != before {
		t.Fatalf("rejected write published a new snapshot")
	}
}

func TestCreateStructuralRejections(t *testing.T) {
	uc, _ := newTestUseCase(model.InboundEntry{ID: "in1", ProductID: "p1", Quantity: 5})
	ctx := context.Background()

	cases := []struct {
		name  string
		items []dto.ItemInput
		want  error
	}{
		{"no items", nil, stock.ErrNoItems},
		{"missing product", []dto.ItemInput{{Quantity: 1}}, stock.ErrMissingProduct},
		{"zero quantity", []dto.ItemInput{{ProductID: "p1"}}, stock.ErrBadQuantity},
		{"duplicate", []dto.ItemInput{{ProductID: "p1", Quantity: 1}, {ProductID: "p1", Quantity: 1}}, stock.ErrDuplicateItem},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateOutbound(ctx, &dto.CreateOutboundInput{Recipient: "R", Items: tc.items})
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestDeleteRestoresStock(t *testing.T) {
	uc, st := newTestUseCase(model.InboundEntry{ID: "in1", ProductID: "p1", Quantity: 8})
	ctx := context.Background()

	before := currentStock(st, "p1")
	txn, err := uc.CreateOutbound(ctx, &dto.CreateOutboundInput{
		Recipient: "R", Items: []dto.ItemInput{{ProductID: "p1", Quantity: 6}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := uc.DeleteOutbound(ctx, txn.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := currentStock(st, "p1"); got != before {
		t.Fatalf("stock = %d, want %d", got, before)
	}
	if err := uc.DeleteOutbound(ctx, txn.ID); !errors.Is(err, outbound.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateMissingTransaction(t *testing.T) {
	uc, _ := newTestUseCase(model.InboundEntry{ID: "in1", ProductID: "p1", Quantity: 8})

	_, err := uc.UpdateOutbound(context.Background(), &dto.UpdateOutboundInput{
		ID: "nope", Recipient: "R", Items: []dto.ItemInput{{ProductID: "p1", Quantity: 1}},
	})
	if !errors.Is(err, outbound.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRenderHandoverMarksDeletedProducts(t *testing.T) {
	uc, st := newTestUseCase(
		model.InboundEntry{ID: "in1", ProductID: "p1", Quantity: 8},
		model.InboundEntry{ID: "in2", ProductID: "p2", Quantity: 8},
	)
	ctx := context.Background()

	txn, err := uc.CreateOutbound(ctx, &dto.CreateOutboundInput{
		Recipient: "Kantor Desa",
		Items:     []dto.ItemInput{{ProductID: "p1", Quantity: 2}, {ProductID: "p2", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Drop p2 from the catalog without touching the ledger.
	_ = st.Update(func(cur *store.Snapshot) (*store.Snapshot, error) {
		return cur.WithProducts(cur.Products[:1]), nil
	})

	out, err := uc.RenderHandover(ctx, txn.ID)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "ACME:Kantor Desa:") || !strings.Contains(out, "Unknown product") || !strings.Contains(out, "Paper") {
		t.Fatalf("unexpected handover:\n%s", out)
	}

	idCtx := metadata.NewIncomingContext(ctx, metadata.Pairs("x-locale", "id"))
	out, err = uc.RenderHandover(idCtx, txn.ID)
	if err != nil {
		t.Fatalf("render id: %v", err)
	}
	if !strings.Contains(out, "Barang tidak dikenal") || strings.Contains(out, "Unknown product") {
		t.Fatalf("deleted product not localized:\n%s", out)
	}

	if _, err := uc.RenderHandover(ctx, "missing"); !errors.Is(err, outbound.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListOutboundSearch(t *testing.T) {
	uc, _ := newTestUseCase(model.InboundEntry{ID: "in1", ProductID: "p1", Quantity: 10})
	ctx := context.Background()

	for _, r := range []string{"SD Negeri 1", "Puskesmas", "SD Negeri 2"} {
		if _, err := uc.CreateOutbound(ctx, &dto.CreateOutboundInput{
			Recipient: r, Items: []dto.ItemInput{{ProductID: "p1", Quantity: 1}},
		}); err != nil {
			t.Fatalf("create %s: %v", r, err)
		}
	}

	got, total, err := uc.ListOutbound(ctx, &dto.OutboundFilters{SearchQuery: "negeri", PageSize: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(got) != 1 {
		t.Fatalf("total=%d len=%d, want 2/1", total, len(got))
	}
}
