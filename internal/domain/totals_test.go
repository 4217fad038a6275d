package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		items    []CartItem
		method   PaymentMethod
		expected Totals
	}{
		{
			name:   "cod adds flat fee",
			items:  []CartItem{{ProductID: "p1", Price: 500, Quantity: 2}},
			method: PaymentCOD,
			expected: Totals{
				Subtotal: 1000,
				CODFee:   100,
				Total:    1100,
			},
		},
		{
			name:   "easypaisa gets wallet discount",
			items:  []CartItem{{ProductID: "p1", Price: 1000, Quantity: 1}},
			method: PaymentEasypaisa,
			expected: Totals{
				Subtotal:       1000,
				WalletDiscount: 50,
				Total:          950,
			},
		},
		{
			name:   "jazzcash gets wallet discount",
			items:  []CartItem{{ProductID: "p1", Price: 1000, Quantity: 1}},
			method: PaymentJazzCash,
			expected: Totals{
				Subtotal:       1000,
				WalletDiscount: 50,
				Total:          950,
			},
		},
		{
			name:   "bank transfer has no fee or discount",
			items:  []CartItem{{ProductID: "p1", Price: 1000, Quantity: 1}},
			method: PaymentBankTransfer,
			expected: Totals{
				Subtotal: 1000,
				Total:    1000,
			},
		},
		{
			name:     "empty cart",
			items:    nil,
			method:   PaymentBankTransfer,
			expected: Totals{},
		},
		{
			name:   "wallet discount rounds to nearest rupee",
			items:  []CartItem{{ProductID: "p1", Price: 99, Quantity: 1}},
			method: PaymentEasypaisa,
			expected: Totals{
				Subtotal:       99,
				WalletDiscount: 5, // round(4.95)
				Total:          94,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(Subtotal(tt.items), tt.method)
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got.Total, 0.0)
		})
	}
}

func TestComputeTotalsIsPure(t *testing.T) {
	subtotal := Subtotal([]CartItem{
		{ProductID: "a", Price: 250, Quantity: 3},
		{ProductID: "b", Price: 1200, Quantity: 1},
	})

	first := ComputeTotals(subtotal, PaymentEasypaisa)
	second := ComputeTotals(subtotal, PaymentEasypaisa)
	assert.Equal(t, first, second)
}

func TestSubtotal(t *testing.T) {
	items := []CartItem{
		{ProductID: "a", Price: 250, Quantity: 3},
		{ProductID: "b", Price: 1200, Quantity: 1},
	}
	assert.Equal(t, 1950.0, Subtotal(items))
	assert.Equal(t, 0.0, Subtotal(nil))
}
