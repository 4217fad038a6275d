package domain

// PaymentMethod identifies how the customer settles an order
type PaymentMethod string

const (
	PaymentEasypaisa    PaymentMethod = "easypaisa"
	PaymentJazzCash     PaymentMethod = "jazzcash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCOD          PaymentMethod = "cod"
)

// IsValid checks if the payment method is one we accept
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentEasypaisa, PaymentJazzCash, PaymentBankTransfer, PaymentCOD:
		return true
	default:
		return false
	}
}

// UsesWallet reports whether the method qualifies for the wallet discount
func (m PaymentMethod) UsesWallet() bool {
	return m == PaymentEasypaisa || m == PaymentJazzCash
}

// RequiresProof reports whether the method needs an uploaded transfer
// screenshot before the order can be placed. COD is the only method that
// skips the confirmation step.
func (m PaymentMethod) RequiresProof() bool {
	return m != PaymentCOD
}

// CheckoutState represents where the payment step currently is
type CheckoutState string

const (
	StateSelectingMethod CheckoutState = "SELECTING_METHOD"
	StateAwaitingProof   CheckoutState = "AWAITING_PROOF_UPLOAD"
	StateSubmitting      CheckoutState = "SUBMITTING"
	StateSucceeded       CheckoutState = "SUCCEEDED"
	StateFailed          CheckoutState = "FAILED"
)

// IsValid checks if the checkout state is valid
func (s CheckoutState) IsValid() bool {
	switch s {
	case StateSelectingMethod, StateAwaitingProof, StateSubmitting,
		StateSucceeded, StateFailed:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a state transition is valid
func (s CheckoutState) CanTransitionTo(next CheckoutState) bool {
	switch s {
	case StateSelectingMethod:
		return next == StateAwaitingProof || next == StateSubmitting
	case StateAwaitingProof:
		return next == StateSelectingMethod || next == StateSubmitting
	case StateSubmitting:
		return next == StateSucceeded || next == StateFailed
	case StateFailed:
		// A failed submission keeps draft and cart intact; retrying
		// re-enters Submitting from here.
		return next == StateSubmitting
	case StateSucceeded:
		return false // Terminal state
	default:
		return false
	}
}
