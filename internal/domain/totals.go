package domain

import "math"

// CODFee is the flat surcharge for cash-on-delivery orders, in rupees.
const CODFee = 100

// WalletDiscountRate applies to mobile-wallet payments.
const WalletDiscountRate = 0.05

// Totals is the derived pricing for a draft under a chosen payment method.
// It is computed on demand and never stored.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	Shipping       float64 `json:"shipping"`
	Tax            float64 `json:"tax"`
	CODFee         float64 `json:"codFee"`
	WalletDiscount float64 `json:"walletDiscount"`
	Total          float64 `json:"total"`
}

// Subtotal sums price×quantity over a set of cart items.
func Subtotal(items []CartItem) float64 {
	var s float64
	for _, it := range items {
		s += it.Price * float64(it.Quantity)
	}
	return s
}

// ComputeTotals derives the payable total for a subtotal and payment method.
// It is a pure function: calling it twice with the same inputs yields
// identical totals.
func ComputeTotals(subtotal float64, method PaymentMethod) Totals {
	t := Totals{Subtotal: subtotal}
	if method == PaymentCOD {
		t.CODFee = CODFee
	}
	if method.UsesWallet() {
		t.WalletDiscount = math.Round(subtotal * WalletDiscountRate)
	}
	t.Total = t.Subtotal + t.Shipping + t.Tax + t.CODFee - t.WalletDiscount
	return t
}
