// Package store owns the in-memory catalog and ledgers. State is an immutable
// Snapshot; every write builds a new Snapshot and swaps it in, so readers
// always see a consistent view without locking.
package store

import (
	"sync"
	"sync/atomic"

	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/stock"
)

// Snapshot must not be mutated once published. Writers copy the slices they change.
type Snapshot struct {
	Products []model.Product
	Inbound  []model.InboundEntry
	Outbound []model.OutboundTransaction
}

func (s *Snapshot) Ledger() stock.Ledger {
	return stock.Ledger{Inbound: s.Inbound, Outbound: s.Outbound}
}

func (s *Snapshot) ProductByID(id string) (model.Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

func (s *Snapshot) ProductByCode(code string) (model.Product, bool) {
	for _, p := range s.Products {
		if p.Code == code {
			return p, true
		}
	}
	return model.Product{}, false
}

// ProductIndex maps product id to product for lookups over many rows.
func (s *Snapshot) ProductIndex() map[string]model.Product {
	idx := make(map[string]model.Product, len(s.Products))
	for _, p := range s.Products {
		idx[p.ID] = p
	}
	return idx
}

type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

func New() *Store {
	s := &Store{}
	s.current.Store(&Snapshot{})
	return s
}

// NewWith seeds the store, mainly for tests.
func NewWith(snap Snapshot) *Store {
	s := &Store{}
	s.current.Store(&snap)
	return s
}

func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Update runs fn with the current snapshot while holding the write lock. fn
// returns the replacement snapshot; on error nothing is published.
func (s *Store) Update(fn func(cur *Snapshot) (*Snapshot, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.current.Load())
	if err != nil {
		return err
	}
	s.current.Store(next)
	return nil
}

// WithProducts returns a shallow copy of s using products.
func (s *Snapshot) WithProducts(products []model.Product) *Snapshot {
	next := *s
	next.Products = products
	return &next
}

func (s *Snapshot) WithInbound(entries []model.InboundEntry) *Snapshot {
	next := *s
	next.Inbound = entries
	return &next
}

func (s *Snapshot) WithOutbound(txns []model.OutboundTransaction) *Snapshot {
	next := *s
	next.Outbound = txns
	return &next
}
