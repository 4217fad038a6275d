package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/meharshop/storefront/internal/domain"
)

// GuestOrderRequest is the order-creation payload.
type GuestOrderRequest struct {
	Items           []domain.CartItem    `json:"items"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod"`
	ShippingAddress string               `json:"shippingAddress"`
	PaymentInfo     domain.PaymentInfo   `json:"paymentInfo"`
}

// uploadResponse is the upload endpoint's reply.
type uploadResponse struct {
	URL string `json:"url"`
}

// AuthUser is the backend's view of the logged-in user.
type AuthUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Credentials is the login/registration payload.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// BankDetails fetches the receiving accounts and filters them by exact
// method match.
func (c *Client) BankDetails(ctx context.Context, method domain.PaymentMethod) ([]domain.BankDetail, error) {
	var raw []json.RawMessage
	if err := c.getJSON(ctx, "/api/bank-details", "", &raw); err != nil {
		return nil, err
	}
	all := decodeList(c, raw, func(b domain.BankDetail) bool {
		return b.Method != "" && b.AccountNumber != ""
	})
	out := make([]domain.BankDetail, 0, len(all))
	for _, b := range all {
		if b.Method == string(method) {
			out = append(out, b)
		}
	}
	return out, nil
}

// Upload sends a single file to the storage endpoint and returns the hosted
// URL.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("shop API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var uploaded uploadResponse
	if err := json.Unmarshal(body, &uploaded); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if uploaded.URL == "" {
		return "", fmt.Errorf("upload failed: no URL returned")
	}
	return uploaded.URL, nil
}

// PlaceGuestOrder submits the order for manual verification by the admin.
func (c *Client) PlaceGuestOrder(ctx context.Context, req GuestOrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.postJSON(ctx, "/api/orders/guest", "", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// MyOrders fetches the caller's order history.
func (c *Client) MyOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var raw []json.RawMessage
	if err := c.getJSON(ctx, "/api/orders/mine", token, &raw); err != nil {
		return nil, err
	}
	return decodeList(c, raw, func(o domain.Order) bool {
		return o.ID != ""
	}), nil
}

// Me fetches the authenticated user. This is the authoritative role check;
// the client-side token decode is only a rendering hint.
func (c *Client) Me(ctx context.Context, token string) (*AuthUser, error) {
	var user AuthUser
	if err := c.getJSON(ctx, "/api/auth/me", token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.postJSON(ctx, "/api/auth/login", "", creds, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login failed: no token returned")
	}
	return resp.Token, nil
}

// Register creates an account and returns its bearer token.
func (c *Client) Register(ctx context.Context, creds Credentials) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.postJSON(ctx, "/api/auth/register", "", creds, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}
