package errors

import (
	"errors"
	"fmt"

	"github.com/meharshop/storefront/internal/domain"
)

// ErrInvalidStateTransition is returned when a checkout operation is called
// in a state that does not allow it
type ErrInvalidStateTransition struct {
	From domain.CheckoutState
	To   domain.CheckoutState
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// ErrNoDraft means the payment step was reached without a checkout draft
// (e.g. direct navigation); callers treat checkout as not started.
var ErrNoDraft = errors.New("no checkout draft")

// ErrProofRequired means placeOrder was attempted before a payment proof
// was uploaded for a method that requires one.
var ErrProofRequired = errors.New("payment proof required before placing order")

// ErrSubmissionInFlight guards against duplicate order submissions.
var ErrSubmissionInFlight = errors.New("order submission already in flight")
