package cart

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/meharshop/storefront/internal/domain"
	"github.com/meharshop/storefront/internal/storage"
)

// Bridge fans cart changes out to any number of views (a badge counter, an
// open cart page) without polling. It has two inputs: Notify, called by the
// Store after a local mutation, and Run, which consumes the storage-change
// signal fired when another process rewrites the cart.
//
// Either way the bridge recomputes the total quantity from the latest
// persisted value. A signal is never treated as a delta, so arrival order
// does not matter.
type Bridge struct {
	storage storage.Store
	logger  *zap.Logger

	mu    sync.Mutex
	subs  map[int]func(count int)
	next  int
	count int
}

// NewBridge creates a bridge over the same durable storage the cart store
// writes to.
func NewBridge(st storage.Store, logger *zap.Logger) *Bridge {
	b := &Bridge{
		storage: st,
		logger:  logger,
		subs:    make(map[int]func(count int)),
	}
	b.count = b.recompute()
	return b
}

// Subscribe registers an observer and immediately delivers the current
// count. The returned function removes the observer.
func (b *Bridge) Subscribe(fn func(count int)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	count := b.count
	b.mu.Unlock()

	fn(count)
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Count returns the last observed total quantity.
func (b *Bridge) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Notify recomputes the count from storage and fans it out. The Store calls
// this after every persisted mutation.
func (b *Bridge) Notify() {
	count := b.recompute()

	b.mu.Lock()
	b.count = count
	fns := make([]func(int), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(count)
	}
}

// Run consumes cross-process storage-change signals until the context is
// done or the channel closes.
func (b *Bridge) Run(ctx context.Context, signals <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-signals:
			if !ok {
				return
			}
			b.Notify()
		}
	}
}

// recompute sums quantities over the persisted cart, defaulting to 0 on any
// read or parse failure.
func (b *Bridge) recompute() int {
	raw, ok, err := b.storage.Read(StorageKey)
	if err != nil || !ok {
		return 0
	}
	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		b.logger.Warn("Corrupt cart data, reporting zero items", zap.Error(err))
		return 0
	}
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}
