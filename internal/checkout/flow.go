package checkout

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/meharshop/storefront/internal/backend"
	"github.com/meharshop/storefront/internal/cart"
	"github.com/meharshop/storefront/internal/domain"
	"github.com/meharshop/storefront/pkg/errors"
)

// Flow drives the payment step: select a method, optionally upload a
// transfer proof, place the order. It owns the PaymentSelection for the
// current session; nothing here outlives the process.
//
// States: SelectingMethod → AwaitingProofUpload → Submitting → Succeeded or
// Failed. COD goes straight from SelectingMethod to Submitting.
type Flow struct {
	drafts  *Drafts
	cart    *cart.Store
	backend *backend.Client
	logger  *zap.Logger

	mu        sync.Mutex
	state     domain.CheckoutState
	method    domain.PaymentMethod
	reference string
	proofURL  string
	banks     []domain.BankDetail

	// uploadGen tags upload attempts; Back and Reset bump it so a response
	// that arrives after the user left the proof step is dropped instead of
	// re-installing a discarded proof.
	uploadGen int
}

// NewFlow starts a fresh payment step in SelectingMethod with the wallet
// method preselected, matching the storefront's default.
func NewFlow(drafts *Drafts, cartStore *cart.Store, client *backend.Client, logger *zap.Logger) *Flow {
	return &Flow{
		drafts:  drafts,
		cart:    cartStore,
		backend: client,
		logger:  logger,
		state:   domain.StateSelectingMethod,
		method:  domain.PaymentEasypaisa,
	}
}

// Reset returns the flow to SelectingMethod, dropping any selection and
// uploaded proof. Called when a new draft is created.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = domain.StateSelectingMethod
	f.method = domain.PaymentEasypaisa
	f.reference = ""
	f.proofURL = ""
	f.banks = nil
	f.uploadGen++
}

// State returns the current checkout state.
func (f *Flow) State() domain.CheckoutState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Method returns the currently selected payment method.
func (f *Flow) Method() domain.PaymentMethod {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.method
}

// ChooseMethod selects a payment method and recomputes the derived totals.
// Valid only while selecting; idempotent for a given method.
func (f *Flow) ChooseMethod(method domain.PaymentMethod) (domain.Totals, error) {
	if !method.IsValid() {
		return domain.Totals{}, fmt.Errorf("unknown payment method %q", method)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != domain.StateSelectingMethod {
		return domain.Totals{}, &errors.ErrInvalidStateTransition{From: f.state, To: domain.StateSelectingMethod}
	}
	f.method = method
	return f.totalsLocked()
}

// SetReference records the optional payment reference entered by the user.
func (f *Flow) SetReference(ref string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reference = ref
}

// Totals derives the current totals from the draft subtotal and the selected
// method.
func (f *Flow) Totals() (domain.Totals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.totalsLocked()
}

func (f *Flow) totalsLocked() (domain.Totals, error) {
	draft, ok := f.drafts.Consume()
	if !ok {
		return domain.Totals{}, errors.ErrNoDraft
	}
	t := domain.ComputeTotals(domain.Subtotal(draft.Items), f.method)
	if t.Total < 0 {
		return domain.Totals{}, fmt.Errorf("computed total is negative: %v", t.Total)
	}
	return t, nil
}

// Confirm advances past method selection. COD submits the order directly;
// every other method moves to the proof-upload step and fetches the
// receiving accounts for the chosen method. A bank-detail fetch failure
// degrades to an empty list rather than blocking the step.
func (f *Flow) Confirm(ctx context.Context) error {
	f.mu.Lock()
	if f.state != domain.StateSelectingMethod {
		from := f.state
		f.mu.Unlock()
		return &errors.ErrInvalidStateTransition{From: from, To: domain.StateAwaitingProof}
	}
	if _, ok := f.drafts.Consume(); !ok {
		f.mu.Unlock()
		return errors.ErrNoDraft
	}
	method := f.method
	f.mu.Unlock()

	if !method.RequiresProof() {
		return f.PlaceOrder(ctx)
	}

	banks, err := f.backend.BankDetails(ctx, method)
	if err != nil {
		f.logger.Warn("Failed to fetch bank details", zap.Error(err))
		banks = nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.transitionLocked(domain.StateAwaitingProof); err != nil {
		return err
	}
	f.banks = banks
	return nil
}

// BankDetails returns the receiving accounts fetched for the chosen method.
func (f *Flow) BankDetails() []domain.BankDetail {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.BankDetail, len(f.banks))
	copy(out, f.banks)
	return out
}

// ProofURL returns the stored proof image reference, if uploaded.
func (f *Flow) ProofURL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.proofURL
}

// UploadProof uploads the transfer screenshot and stores the returned
// reference URL. On failure the flow stays in AwaitingProofUpload with no
// reference stored, and the error is surfaced to the user.
func (f *Flow) UploadProof(ctx context.Context, filename string, r io.Reader) error {
	f.mu.Lock()
	if f.state != domain.StateAwaitingProof {
		from := f.state
		f.mu.Unlock()
		return &errors.ErrInvalidStateTransition{From: from, To: domain.StateAwaitingProof}
	}
	gen := f.uploadGen
	f.mu.Unlock()

	url, err := f.backend.Upload(ctx, filename, r)
	if err != nil {
		return fmt.Errorf("proof upload failed: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	// The user may have backed out of the proof step while the upload was in
	// flight; the stale response is ignored, not an error.
	if f.state != domain.StateAwaitingProof || f.uploadGen != gen {
		return nil
	}
	f.proofURL = url
	return nil
}

// Back returns from the proof-upload step to method selection, discarding
// any uploaded-but-unconfirmed proof reference.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != domain.StateAwaitingProof {
		return &errors.ErrInvalidStateTransition{From: f.state, To: domain.StateSelectingMethod}
	}
	if err := f.transitionLocked(domain.StateSelectingMethod); err != nil {
		return err
	}
	f.proofURL = ""
	f.banks = nil
	f.uploadGen++
	return nil
}

// PlaceOrder submits the order built from the draft. On a 2xx response both
// the draft and the cart are cleared; on failure both are preserved and the
// flow lands in Failed, from which the user may retry.
func (f *Flow) PlaceOrder(ctx context.Context) error {
	f.mu.Lock()

	if f.state == domain.StateSubmitting {
		f.mu.Unlock()
		return errors.ErrSubmissionInFlight
	}

	switch f.state {
	case domain.StateSelectingMethod:
		if f.method.RequiresProof() {
			from := f.state
			f.mu.Unlock()
			return &errors.ErrInvalidStateTransition{From: from, To: domain.StateSubmitting}
		}
	case domain.StateAwaitingProof:
		if f.proofURL == "" {
			f.mu.Unlock()
			return errors.ErrProofRequired
		}
	case domain.StateFailed:
		// Retry with whatever was already entered.
	default:
		from := f.state
		f.mu.Unlock()
		return &errors.ErrInvalidStateTransition{From: from, To: domain.StateSubmitting}
	}

	draft, ok := f.drafts.Consume()
	if !ok {
		f.mu.Unlock()
		return errors.ErrNoDraft
	}

	if _, err := f.totalsLocked(); err != nil {
		f.mu.Unlock()
		return err
	}

	payerName := draft.Name
	payerPhone := draft.Phone
	if draft.Invoice != nil {
		if draft.Invoice.Name != "" {
			payerName = draft.Invoice.Name
		}
		if draft.Invoice.Phone != "" {
			payerPhone = draft.Invoice.Phone
		}
	}

	req := backend.GuestOrderRequest{
		Items:           draft.Items,
		PaymentMethod:   f.method,
		ShippingAddress: draft.ShippingAddress,
		PaymentInfo: domain.PaymentInfo{
			Reference:     f.reference,
			PayerName:     payerName,
			PayerPhone:    payerPhone,
			ProofImageURL: f.proofURL,
		},
	}

	if err := f.transitionLocked(domain.StateSubmitting); err != nil {
		f.mu.Unlock()
		return err
	}
	f.mu.Unlock()

	order, err := f.backend.PlaceGuestOrder(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.transitionLocked(domain.StateFailed)
		return fmt.Errorf("failed to place order: %w", err)
	}

	// Terminal success: the draft and cart are only cleared here.
	if err := f.drafts.Discard(); err != nil {
		f.logger.Warn("Failed to discard draft after order", zap.Error(err))
	}
	if err := f.cart.Clear(); err != nil {
		f.logger.Warn("Failed to clear cart after order", zap.Error(err))
	}
	f.transitionLocked(domain.StateSucceeded)
	f.logger.Info("Order placed", zap.String("order_id", order.ID), zap.String("method", string(f.method)))
	return nil
}

// transitionLocked validates and applies a state transition. Callers hold
// the lock.
func (f *Flow) transitionLocked(next domain.CheckoutState) error {
	if !f.state.CanTransitionTo(next) {
		return &errors.ErrInvalidStateTransition{From: f.state, To: next}
	}
	f.state = next
	return nil
}
