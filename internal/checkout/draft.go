// Package checkout implements the draft handoff between the cart view and
// the payment step, and the payment step's state machine.
package checkout

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meharshop/storefront/internal/domain"
	"github.com/meharshop/storefront/internal/storage"
)

// DraftKey is the session storage key the checkout draft lives under.
const DraftKey = "checkoutDraft"

// Drafts persists the checkout draft in session-scoped storage. The draft is
// a snapshot: cart edits made in another view after checkout begins do not
// alter it.
type Drafts struct {
	storage storage.Store
	logger  *zap.Logger
}

func NewDrafts(st storage.Store, logger *zap.Logger) *Drafts {
	return &Drafts{storage: st, logger: logger}
}

// Create snapshots the given cart items plus contact info into a new draft
// and persists it, superseding any previous draft.
func (d *Drafts) Create(items []domain.CartItem, contact domain.ContactInfo) (*domain.CheckoutDraft, error) {
	snapshot := make([]domain.CartItem, len(items))
	copy(snapshot, items)

	draft := &domain.CheckoutDraft{
		ID:              uuid.New(),
		Items:           snapshot,
		ShippingAddress: contact.ShippingAddress,
		Name:            contact.Name,
		Email:           contact.Email,
		Phone:           contact.Phone,
	}
	if err := d.persist(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// UpdateInvoice merges invoice fields into the existing draft and
// re-persists it. Used when billing details are edited on the payment page
// without returning to the cart.
func (d *Drafts) UpdateInvoice(inv domain.InvoiceInfo) (*domain.CheckoutDraft, error) {
	draft, ok := d.Consume()
	if !ok {
		return nil, fmt.Errorf("no draft to update")
	}
	draft.Invoice = &inv
	if err := d.persist(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Consume reads the draft for rendering. ok=false means checkout has not
// started (absent or unreadable draft); callers must handle that case rather
// than assume a draft exists.
func (d *Drafts) Consume() (*domain.CheckoutDraft, bool) {
	raw, ok, err := d.storage.Read(DraftKey)
	if err != nil || !ok {
		if err != nil {
			d.logger.Warn("Failed to read checkout draft", zap.Error(err))
		}
		return nil, false
	}
	var draft domain.CheckoutDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		d.logger.Warn("Corrupt checkout draft, treating as absent", zap.Error(err))
		return nil, false
	}
	return &draft, true
}

// Discard erases the draft. Called only after a terminal success; a failed
// submission keeps the draft so the user can retry without re-entering data.
func (d *Drafts) Discard() error {
	return d.storage.Delete(DraftKey)
}

func (d *Drafts) persist(draft *domain.CheckoutDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return d.storage.Write(DraftKey, raw)
}
