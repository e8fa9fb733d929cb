package listener

import (
	"context"
	"errors"
	"testing"
	"time"

	inboundrepo "github.com/fekuna/omnipos-warehouse/internal/inbound/repository"
	inbounduc "github.com/fekuna/omnipos-warehouse/internal/inbound/usecase"
	"github.com/fekuna/omnipos-warehouse/internal/model"
	outboundrepo "github.com/fekuna/omnipos-warehouse/internal/outbound/repository"
	outbounduc "github.com/fekuna/omnipos-warehouse/internal/outbound/usecase"
	productrepo "github.com/fekuna/omnipos-warehouse/internal/product/repository"
	"github.com/fekuna/omnipos-warehouse/internal/stock"
	"github.com/fekuna/omnipos-warehouse/internal/store"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"github.com/segmentio/kafka-go"
)

type queueReader struct {
	msgs []kafka.Message
}

func (q *queueReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(q.msgs) == 0 {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	m := q.msgs[0]
	q.msgs = q.msgs[1:]
	return m, nil
}

func newListener(st *store.Store, reader MessageReader) *InventoryListener {
	log := logger.NewNop()
	products := productrepo.NewMemoryRepository(st)
	in := inbounduc.NewInboundUseCase(inboundrepo.NewMemoryRepository(st), products, log)
	out := outbounduc.NewOutboundUseCase(outboundrepo.NewMemoryRepository(st), products, nil, log)
	return NewInventoryListener(reader, in, out, products, log)
}

func seededStore() *store.Store {
	return store.NewWith(store.Snapshot{Products: []model.Product{
		{BaseModel: model.BaseModel{ID: "p1"}, Code: "BRG-01", Name: "Paper", Unit: "box"},
	}})
}

func TestProcessStockReceivedByCode(t *testing.T) {
	st := seededStore()
	l := newListener(st, nil)

	l.processMessage(context.Background(), []byte(`{"event_id":"e1","event_type":"StockReceived","payload":{"product_code":"BRG-01","quantity":12,"date":"2026-02-03"}}`))

	snap := st.Snapshot()
	if len(snap.Inbound) != 1 || snap.Inbound[0].ProductID != "p1" || snap.Inbound[0].Month != 2 {
		t.Fatalf("unexpected inbound %+v", snap.Inbound)
	}
}

func TestProcessDispatchValidatesStock(t *testing.T) {
	st := store.NewWith(store.Snapshot{
		Products: seededStore().Snapshot().Products,
		Inbound:  []model.InboundEntry{{ID: "i1", ProductID: "p1", Quantity: 5}},
	})
	l := newListener(st, nil)
	ctx := context.Background()

	l.processMessage(ctx, []byte(`{"event_id":"e2","event_type":"DispatchRequested","payload":{"recipient":"Kantor","address":"Kota Bogor","items":[{"product_code":"BRG-01","quantity":9}]}}`))
	if n := len(st.Snapshot().Outbound); n != 0 {
		t.Fatalf("over-dispatch was recorded: %d transactions", n)
	}

	l.processMessage(ctx, []byte(`{"event_id":"e3","event_type":"DispatchRequested","payload":{"recipient":"Kantor","address":"Kota Bogor","items":[{"product_id":"p1","quantity":4}]}}`))
	if got := stock.CurrentStock(st.Snapshot().Ledger(), "p1"); got != 1 {
		t.Fatalf("stock = %d, want 1", got)
	}
}

func TestProcessIgnoresGarbage(t *testing.T) {
	st := seededStore()
	l := newListener(st, nil)
	ctx := context.Background()

	l.processMessage(ctx, []byte(`not json`))
	l.processMessage(ctx, []byte(`{"event_type":"OrderCreated","payload":{}}`))
	l.processMessage(ctx, []byte(`{"event_type":"StockReceived","payload":{"product_code":"NOPE","quantity":1}}`))

	snap := st.Snapshot()
	if len(snap.Inbound) != 0 || len(snap.Outbound) != 0 {
		t.Fatalf("garbage produced ledger writes")
	}
}

func TestResolveProductUnknownCode(t *testing.T) {
	l := newListener(seededStore(), nil)
	if _, err := l.resolveProduct(context.Background(), "", "X"); !errors.Is(err, errUnknownProductCode) {
		t.Fatalf("expected errUnknownProductCode, got %v", err)
	}
}

func TestStartDrainsQueueUntilCancelled(t *testing.T) {
	st := seededStore()
	reader := &queueReader{msgs: []kafka.Message{
		{Value: []byte(`{"event_type":"StockReceived","payload":{"product_id":"p1","quantity":2}}`)},
		{Value: []byte(`{"event_type":"StockReceived","payload":{"product_id":"p1","quantity":3}}`)},
	}}
	l := newListener(st, reader)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for stock.CurrentStock(st.Snapshot().Ledger(), "p1") != 5 {
		select {
		case <-done:
			t.Fatalf("listener exited early")
		case <-deadline:
			t.Fatalf("events not applied in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done
}
