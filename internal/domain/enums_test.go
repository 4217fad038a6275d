package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentMethod(t *testing.T) {
	assert.True(t, PaymentEasypaisa.IsValid())
	assert.True(t, PaymentCOD.IsValid())
	assert.False(t, PaymentMethod("paypal").IsValid())

	assert.True(t, PaymentEasypaisa.UsesWallet())
	assert.True(t, PaymentJazzCash.UsesWallet())
	assert.False(t, PaymentBankTransfer.UsesWallet())
	assert.False(t, PaymentCOD.UsesWallet())

	assert.True(t, PaymentBankTransfer.RequiresProof())
	assert.True(t, PaymentEasypaisa.RequiresProof())
	assert.False(t, PaymentCOD.RequiresProof())
}

func TestCheckoutStateTransitions(t *testing.T) {
	tests := []struct {
		from    CheckoutState
		to      CheckoutState
		allowed bool
	}{
		{StateSelectingMethod, StateAwaitingProof, true},
		{StateSelectingMethod, StateSubmitting, true},
		{StateSelectingMethod, StateSucceeded, false},
		{StateAwaitingProof, StateSelectingMethod, true},
		{StateAwaitingProof, StateSubmitting, true},
		{StateAwaitingProof, StateSucceeded, false},
		{StateSubmitting, StateSucceeded, true},
		{StateSubmitting, StateFailed, true},
		{StateSubmitting, StateSelectingMethod, false},
		{StateFailed, StateSubmitting, true},
		{StateFailed, StateSelectingMethod, false},
		{StateSucceeded, StateSubmitting, false},
		{StateSucceeded, StateFailed, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}
