// Package cart implements the persisted shopping cart and the bridge that
// keeps every open view of it consistent.
package cart

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/meharshop/storefront/internal/domain"
	"github.com/meharshop/storefront/internal/storage"
)

// StorageKey is the durable storage key the cart lives under.
const StorageKey = "cart"

// Store owns the cart line items. Every mutation persists the whole cart and
// then notifies the bridge synchronously, since the storage-change signal
// only fires for other processes.
type Store struct {
	storage storage.Store
	bridge  *Bridge
	logger  *zap.Logger

	mu sync.Mutex
}

// NewStore creates a cart store over the given durable storage. The bridge
// may be nil when no views need change notifications (e.g. the CLI).
func NewStore(st storage.Store, bridge *Bridge, logger *zap.Logger) *Store {
	return &Store{
		storage: st,
		bridge:  bridge,
		logger:  logger,
	}
}

// load reads the persisted cart. Corrupt or unreadable data is treated as an
// empty cart; it must never crash the caller.
func (s *Store) load() []domain.CartItem {
	raw, ok, err := s.storage.Read(StorageKey)
	if err != nil || !ok {
		if err != nil {
			s.logger.Warn("Failed to read cart, treating as empty", zap.Error(err))
		}
		return nil
	}
	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Warn("Corrupt cart data, treating as empty", zap.Error(err))
		return nil
	}
	return items
}

func (s *Store) persist(items []domain.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.storage.Write(StorageKey, raw)
}

// notify runs after persistence so observers never see a count ahead of the
// stored value.
func (s *Store) notify() {
	if s.bridge != nil {
		s.bridge.Notify()
	}
}

// Add appends the item, or increments the quantity of an existing entry with
// the same product ID. A non-positive quantity on the added item counts as 1.
func (s *Store) Add(item domain.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.Quantity < 1 {
		item.Quantity = 1
	}

	items := s.load()
	merged := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	if err := s.persist(items); err != nil {
		return err
	}
	s.notify()
	return nil
}

// Remove deletes the entry for the product if present; no-op otherwise.
func (s *Store) Remove(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	kept := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}

	if err := s.persist(kept); err != nil {
		return err
	}
	s.notify()
	return nil
}

// SetQuantity overwrites the quantity for the product. A quantity below 1
// removes the item.
func (s *Store) SetQuantity(productID string, quantity int) error {
	if quantity < 1 {
		return s.Remove(productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			break
		}
	}

	if err := s.persist(items); err != nil {
		return err
	}
	s.notify()
	return nil
}

// Clear empties the cart and persists the empty state.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist([]domain.CartItem{}); err != nil {
		return err
	}
	s.notify()
	return nil
}

// Items returns a read-only snapshot of the cart in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out
}
