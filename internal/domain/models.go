package domain

import "github.com/google/uuid"

// CartItem is one line of the persisted cart. ProductID is the unique key:
// adding the same product again increments Quantity instead of appending.
type CartItem struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Quantity  int     `json:"quantity"`
}

// ContactInfo is what the cart view collects before handing off to checkout.
type ContactInfo struct {
	ShippingAddress string `json:"shippingAddress"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
}

// InvoiceInfo holds optional billing details edited on the payment step.
type InvoiceInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	TaxID string `json:"taxId"`
}

// CheckoutDraft is a point-in-time snapshot of the cart plus contact info.
// It is owned by the checkout flow: cart edits made after the draft is taken
// do not alter an in-progress payment.
type CheckoutDraft struct {
	ID              uuid.UUID    `json:"id"`
	Items           []CartItem   `json:"items"`
	ShippingAddress string       `json:"shippingAddress"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	Invoice         *InvoiceInfo `json:"invoice,omitempty"`
}

// PaymentInfo accompanies an order submission for manual verification.
type PaymentInfo struct {
	Reference     string `json:"reference"`
	PayerName     string `json:"payerName"`
	PayerPhone    string `json:"payerPhone"`
	ProofImageURL string `json:"proofImageUrl"`
}

// BankDetail is one receiving account for a manual-transfer method.
type BankDetail struct {
	ID            string `json:"_id"`
	Method        string `json:"method"`
	BankName      string `json:"bankName"`
	AccountTitle  string `json:"accountTitle"`
	AccountNumber string `json:"accountNumber"`
	IBAN          string `json:"iban,omitempty"`
}

// Product as served by the catalog API.
type Product struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Images      []string `json:"images,omitempty"`
	Category    string   `json:"category,omitempty"`
	Stock       int      `json:"stock"`
}

// Category as served by the catalog API.
type Category struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Banner is a promotional slide on the landing page.
type Banner struct {
	ID       string `json:"_id"`
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"imageUrl"`
	Link     string `json:"link,omitempty"`
}

// Review is a per-product customer review.
type Review struct {
	ID        string `json:"_id,omitempty"`
	ProductID string `json:"productId,omitempty"`
	Author    string `json:"author"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Testimonial is a storewide customer testimonial.
type Testimonial struct {
	ID       string `json:"_id,omitempty"`
	Author   string `json:"author"`
	Message  string `json:"message"`
	IsActive bool   `json:"isActive"`
}

// Order is the backend's record of a placed order.
type Order struct {
	ID              string      `json:"_id"`
	Items           []CartItem  `json:"items"`
	PaymentMethod   string      `json:"paymentMethod"`
	ShippingAddress string      `json:"shippingAddress"`
	PaymentInfo     PaymentInfo `json:"paymentInfo"`
	Status          string      `json:"status,omitempty"`
	Total           float64     `json:"total,omitempty"`
	CreatedAt       string      `json:"createdAt,omitempty"`
}
