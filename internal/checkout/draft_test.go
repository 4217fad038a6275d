package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meharshop/storefront/internal/domain"
	"github.com/meharshop/storefront/internal/storage"
)

func newTestDrafts() (*Drafts, *storage.MemStore) {
	st := storage.NewMemStore()
	return NewDrafts(st, zap.NewNop()), st
}

func TestDraftLifecycle(t *testing.T) {
	drafts, _ := newTestDrafts()

	_, ok := drafts.Consume()
	assert.False(t, ok, "no draft before checkout starts")

	items := []domain.CartItem{{ProductID: "p1", Title: "Mug", Price: 500, Quantity: 2}}
	created, err := drafts.Create(items, domain.ContactInfo{
		ShippingAddress: "12 Mall Road, Lahore",
		Name:            "Ayesha",
		Email:           "ayesha@example.com",
		Phone:           "0300-0000000",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "", created.ID.String())

	got, ok := drafts.Consume()
	require.True(t, ok)
	assert.Equal(t, created.Items, got.Items)
	assert.Equal(t, "Ayesha", got.Name)
	assert.Nil(t, got.Invoice)

	require.NoError(t, drafts.Discard())
	_, ok = drafts.Consume()
	assert.False(t, ok)
}

func TestDraftIsASnapshot(t *testing.T) {
	drafts, _ := newTestDrafts()

	items := []domain.CartItem{{ProductID: "p1", Quantity: 1}}
	_, err := drafts.Create(items, domain.ContactInfo{Name: "A"})
	require.NoError(t, err)

	// Later cart edits must not leak into the draft
	items[0].Quantity = 99

	got, ok := drafts.Consume()
	require.True(t, ok)
	assert.Equal(t, 1, got.Items[0].Quantity)
}

func TestUpdateInvoiceMergesAndRepersists(t *testing.T) {
	drafts, _ := newTestDrafts()

	_, err := drafts.Create([]domain.CartItem{{ProductID: "p1", Quantity: 1}}, domain.ContactInfo{Name: "A"})
	require.NoError(t, err)

	inv := domain.InvoiceInfo{Name: "Acme Ltd", Email: "billing@acme.pk", TaxID: "1234567"}
	updated, err := drafts.UpdateInvoice(inv)
	require.NoError(t, err)
	require.NotNil(t, updated.Invoice)
	assert.Equal(t, "Acme Ltd", updated.Invoice.Name)

	// The merged draft supersedes the stored one
	got, ok := drafts.Consume()
	require.True(t, ok)
	require.NotNil(t, got.Invoice)
	assert.Equal(t, "1234567", got.Invoice.TaxID)
	assert.Equal(t, "A", got.Name, "contact info survives invoice edits")
}

func TestUpdateInvoiceWithoutDraftFails(t *testing.T) {
	drafts, _ := newTestDrafts()

	_, err := drafts.UpdateInvoice(domain.InvoiceInfo{Name: "X"})
	assert.Error(t, err)
}

func TestCorruptDraftTreatedAsAbsent(t *testing.T) {
	drafts, st := newTestDrafts()

	require.NoError(t, st.Write(DraftKey, []byte("not json")))
	_, ok := drafts.Consume()
	assert.False(t, ok)
}
