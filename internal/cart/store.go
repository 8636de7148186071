// Package cart owns the shopping cart state shared by every view.
//
// A Store is the single source of truth for cart contents. Each transition
// computes a new domain.Cart with Reduce and publishes it atomically, so a
// reader sees either the old state or the new one, never a mix.
package cart

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartctx-demo/internal/domain"
	"github.com/nikolayk812/cartctx-demo/internal/port"
	"golang.org/x/text/currency"
)

// Listener receives every state published by a Store, in order.
type Listener = func(domain.Cart)

type Store struct {
	catalog port.ProductLookup
	logger  *slog.Logger

	// mu serializes transitions and listener notification.
	mu        sync.Mutex
	state     atomic.Pointer[domain.Cart]
	listeners map[uint64]Listener
	nextID    uint64
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithCart seeds the store with an initial state instead of an empty cart.
func WithCart(c domain.Cart) Option {
	return func(s *Store) {
		c = c.Clone()
		s.state.Store(&c)
	}
}

// NewStore creates an empty cart priced in cur whose products are resolved through catalog.
func NewStore(catalog port.ProductLookup, cur currency.Unit, opts ...Option) *Store {
	s := &Store{
		catalog:   catalog,
		logger:    slog.Default(),
		listeners: make(map[uint64]Listener),
	}
	s.state.Store(&domain.Cart{ID: uuid.New(), Currency: cur})

	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With("cart_id", s.current().ID.String())

	return s
}

// Cart returns a copy of the current state.
func (s *Store) Cart() domain.Cart {
	return s.current().Clone()
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []domain.CartItem {
	return s.Cart().Items
}

// Total is recomputed from the current items on every call.
func (s *Store) Total() domain.Money {
	return s.current().Total()
}

// AddItemToCart adds one unit of productID. An id missing from the catalog
// leaves the cart unchanged and returns domain.ErrProductNotFound.
func (s *Store) AddItemToCart(productID string) error {
	product, ok := s.catalog.Get(productID)
	if !ok {
		s.logger.Warn("add unknown product ignored", "product_id", productID)
		return fmt.Errorf("product[%s]: %w", productID, domain.ErrProductNotFound)
	}

	return s.Dispatch(AddItem{Product: product})
}

// UpdateItemQuantity adds delta to the quantity of productID, removing the
// item once the quantity drops to zero or below. An id that is not in the
// cart leaves it unchanged and returns domain.ErrItemNotInCart.
func (s *Store) UpdateItemQuantity(productID string, delta int) error {
	return s.Dispatch(UpdateQuantity{ProductID: productID, Delta: delta})
}

// Dispatch applies action and notifies listeners when it succeeds.
// Listeners run while the store is locked and must not dispatch or unsubscribe.
func (s *Store) Dispatch(action Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(*s.current(), action)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotInCart) {
			s.logger.Debug("update ignored", "action", fmt.Sprintf("%T", action), "error", err)
		} else {
			s.logger.Warn("transition rejected", "action", fmt.Sprintf("%T", action), "error", err)
		}
		return err
	}

	s.state.Store(&next)
	s.logger.Debug("cart updated",
		"action", fmt.Sprintf("%T", action),
		"items", len(next.Items),
		"total", next.Total().String())

	for _, id := range s.listenerIDs() {
		s.listeners[id](next.Clone())
	}

	return nil
}

// Subscribe registers l for every future state. The returned func removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
		})
	}
}

func (s *Store) current() *domain.Cart {
	return s.state.Load()
}

// listenerIDs returns subscription ids in registration order. Callers hold mu.
func (s *Store) listenerIDs() []uint64 {
	ids := make([]uint64, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}
