package cart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meharshop/storefront/internal/domain"
	"github.com/meharshop/storefront/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.MemStore) {
	t.Helper()
	st := storage.NewMemStore()
	logger := zap.NewNop()
	bridge := NewBridge(st, logger)
	return NewStore(st, bridge, logger), st
}

func TestAddAggregatesByProductID(t *testing.T) {
	store, _ := newTestStore(t)

	item := domain.CartItem{ProductID: "p1", Title: "Mug", Price: 500, Quantity: 2}
	require.NoError(t, store.Add(item))
	require.NoError(t, store.Add(domain.CartItem{ProductID: "p1", Title: "Mug", Price: 500, Quantity: 3}))
	require.NoError(t, store.Add(domain.CartItem{ProductID: "p1", Title: "Mug", Price: 500}))

	items := store.Items()
	require.Len(t, items, 1, "same product must never duplicate")
	assert.Equal(t, 6, items[0].Quantity, "2 + 3 + default 1")
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Add(domain.CartItem{ProductID: "a", Title: "A", Quantity: 1}))
	require.NoError(t, store.Add(domain.CartItem{ProductID: "b", Title: "B", Quantity: 1}))
	require.NoError(t, store.Add(domain.CartItem{ProductID: "c", Title: "C", Quantity: 1}))
	require.NoError(t, store.Add(domain.CartItem{ProductID: "b", Title: "B", Quantity: 4}))

	items := store.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{items[0].ProductID, items[1].ProductID, items[2].ProductID})
	assert.Equal(t, 5, items[1].Quantity)
}

func TestSetQuantityZeroEqualsRemove(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Add(domain.CartItem{ProductID: "p1", Quantity: 2}))
	require.NoError(t, store.Add(domain.CartItem{ProductID: "p2", Quantity: 1}))

	require.NoError(t, store.SetQuantity("p1", 0))
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)

	require.NoError(t, store.SetQuantity("p2", 7))
	assert.Equal(t, 7, store.Items()[0].Quantity)
}

func TestRemoveMissingIsNoop(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Add(domain.CartItem{ProductID: "p1", Quantity: 1}))
	require.NoError(t, store.Remove("nope"))
	assert.Len(t, store.Items(), 1)
}

func TestCorruptStorageTreatedAsEmpty(t *testing.T) {
	store, st := newTestStore(t)

	require.NoError(t, st.Write(StorageKey, []byte("{not json")))
	assert.Empty(t, store.Items())

	// Mutations still work and repair the stored value
	require.NoError(t, store.Add(domain.CartItem{ProductID: "p1", Quantity: 1}))
	items := store.Items()
	require.Len(t, items, 1)
}

func TestPersistedCartRoundTrips(t *testing.T) {
	st := storage.NewMemStore()
	logger := zap.NewNop()
	store := NewStore(st, nil, logger)

	require.NoError(t, store.Add(domain.CartItem{ProductID: "a", Title: "A", Price: 100, ImageURL: "/a.jpg", Quantity: 2}))
	require.NoError(t, store.Add(domain.CartItem{ProductID: "b", Title: "B", Price: 250, Quantity: 1}))

	// A fresh store over the same storage sees the identical sequence
	reloaded := NewStore(st, nil, logger)
	assert.Equal(t, store.Items(), reloaded.Items())
}

func TestClearPersistsEmptyState(t *testing.T) {
	store, st := newTestStore(t)

	require.NoError(t, store.Add(domain.CartItem{ProductID: "p1", Quantity: 3}))
	require.NoError(t, store.Clear())

	raw, ok, err := st.Read(StorageKey)
	require.NoError(t, err)
	require.True(t, ok, "clear persists an empty cart rather than deleting the key")

	var items []domain.CartItem
	require.NoError(t, json.Unmarshal(raw, &items))
	assert.Empty(t, items)
}
