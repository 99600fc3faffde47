package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"plush-store/models"
)

// KeyValueStore is the durable store a cart engine snapshots into. The
// second Get result reports whether the key exists.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

var ErrNoStore = errors.New("cart engine requires a key-value store")

// CartEngine is the single source of truth for one session's cart. The
// in-memory snapshot is authoritative: the durable store is written after
// every mutation but never consulted again until the next session
// restore, so a failed write degrades to in-memory only. Concurrent
// requests on the same session cookie land on the same engine, so all
// entry and flag access is serialized by the engine's own lock.
type CartEngine struct {
	store KeyValueStore
	key   string

	mu          sync.Mutex
	items       models.CartSnapshot
	isOpen      bool
	subscribers []func()
}

// NewCartEngine restores the snapshot stored under key, or starts empty
// when the key is absent or the stored value cannot be decoded.
func NewCartEngine(ctx context.Context, store KeyValueStore, key string) (*CartEngine, error) {
	if store == nil {
		return nil, ErrNoStore
	}

	e := &CartEngine{store: store, key: key, items: models.CartSnapshot{}}

	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		log.Printf("[Cart] Failed to read snapshot %s, starting empty: %v", key, err)
		return e, nil
	}
	if !ok {
		return e, nil
	}

	var snapshot models.CartSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		log.Printf("[Cart] Corrupt snapshot under %s, starting empty: %v", key, err)
		return e, nil
	}
	e.items = snapshot

	return e, nil
}

// mutate runs fn under the engine lock and, when fn reports a change,
// persists the new snapshot and notifies subscribers. Persistence and
// callbacks run outside the lock so a subscriber may read the engine.
func (e *CartEngine) mutate(ctx context.Context, fn func() bool) {
	e.mu.Lock()
	if !fn() {
		e.mu.Unlock()
		return
	}
	data, marshalErr := json.Marshal(e.items)
	subscribers := e.subscribers
	e.mu.Unlock()

	if marshalErr != nil {
		log.Printf("[Cart] Failed to marshal snapshot %s: %v", e.key, marshalErr)
	} else if err := e.store.Set(ctx, e.key, string(data)); err != nil {
		log.Printf("[Cart] Failed to persist snapshot %s, cart is in-memory only: %v", e.key, err)
	}

	for _, fn := range subscribers {
		fn()
	}
}

// AddItem increments the quantity of an existing entry in place, or
// appends a new entry with quantity 1.
func (e *CartEngine) AddItem(ctx context.Context, product models.Product) {
	e.mutate(ctx, func() bool {
		for i := range e.items {
			if e.items[i].Product.ID == product.ID {
				e.items[i].Quantity++
				return true
			}
		}
		e.items = append(e.items, models.CartItem{Product: product, Quantity: 1})
		return true
	})
}

// RemoveItem deletes the entry for productID. Removing an absent product
// is a no-op.
func (e *CartEngine) RemoveItem(ctx context.Context, productID string) {
	e.mutate(ctx, func() bool {
		return e.removeLocked(productID)
	})
}

// SetQuantity replaces the quantity of an existing entry, preserving its
// position. A quantity of zero or less removes the entry; an unknown
// productID is a no-op.
func (e *CartEngine) SetQuantity(ctx context.Context, productID string, quantity int) {
	e.mutate(ctx, func() bool {
		if quantity <= 0 {
			return e.removeLocked(productID)
		}
		for i := range e.items {
			if e.items[i].Product.ID == productID {
				e.items[i].Quantity = quantity
				return true
			}
		}
		return false
	})
}

func (e *CartEngine) Clear(ctx context.Context) {
	e.mutate(ctx, func() bool {
		e.items = models.CartSnapshot{}
		return true
	})
}

func (e *CartEngine) removeLocked(productID string) bool {
	for i := range e.items {
		if e.items[i].Product.ID == productID {
			e.items = append(e.items[:i], e.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the snapshot so callers cannot mutate the
// engine's state behind its back.
func (e *CartEngine) Items() models.CartSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(models.CartSnapshot, len(e.items))
	copy(out, e.items)
	return out
}

func (e *CartEngine) TotalPrice() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	var total float64
	for _, item := range e.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

func (e *CartEngine) TotalItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	count := 0
	for _, item := range e.items {
		count += item.Quantity
	}
	return count
}

func (e *CartEngine) Open() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isOpen = true
}

func (e *CartEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isOpen = false
}

func (e *CartEngine) Toggle() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isOpen = !e.isOpen
}

func (e *CartEngine) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isOpen
}

// Subscribe registers a callback invoked after every entry mutation. The
// drawer badge and the drawer itself are separate subscribers of the same
// engine.
func (e *CartEngine) Subscribe(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subscribers = append(e.subscribers, fn)
}

// CartService hands out one engine per storefront session. Engines are
// created lazily and restored from the durable store on first access.
type CartService struct {
	mu      sync.Mutex
	store   KeyValueStore
	engines map[string]*CartEngine
}

func NewCartService(store KeyValueStore) (*CartService, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	return &CartService{
		store:   store,
		engines: make(map[string]*CartEngine),
	}, nil
}

// Engine returns the cart engine for sessionID, restoring or creating it
// as needed.
func (s *CartService) Engine(ctx context.Context, sessionID string) (*CartEngine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if engine, ok := s.engines[sessionID]; ok {
		return engine, nil
	}

	engine, err := NewCartEngine(ctx, s.store, cartKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cart for session %s: %w", sessionID, err)
	}
	s.engines[sessionID] = engine
	return engine, nil
}

func cartKey(sessionID string) string {
	return "plush-store:cart:" + sessionID
}
