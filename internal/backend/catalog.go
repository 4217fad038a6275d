package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/meharshop/storefront/internal/domain"
)

// decodeList unmarshals a raw JSON array entry by entry, skipping entries
// that fail to decode or validate. The API's payload shapes are not under
// our control; a malformed entry must not take the whole list down.
func decodeList[T any](c *Client, raw []json.RawMessage, valid func(T) bool) []T {
	out := make([]T, 0, len(raw))
	for _, entry := range raw {
		var v T
		if err := json.Unmarshal(entry, &v); err != nil {
			c.logger.Warn("Skipping malformed list entry", zap.Error(err))
			continue
		}
		if !valid(v) {
			c.logger.Warn("Skipping invalid list entry", zap.ByteString("entry", entry))
			continue
		}
		out = append(out, v)
	}
	return out
}

// Products fetches the product catalog.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var raw []json.RawMessage
	if err := c.getJSON(ctx, "/api/products", "", &raw); err != nil {
		return nil, err
	}
	return decodeList(c, raw, func(p domain.Product) bool {
		return p.ID != "" && p.Title != "" && p.Price >= 0
	}), nil
}

// Product fetches a single product by ID.
func (c *Client) Product(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := c.getJSON(ctx, "/api/products/"+id, "", &p); err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, fmt.Errorf("product %s: malformed response", id)
	}
	return &p, nil
}

// Categories fetches the category list.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var raw []json.RawMessage
	if err := c.getJSON(ctx, "/api/categories", "", &raw); err != nil {
		return nil, err
	}
	return decodeList(c, raw, func(cat domain.Category) bool {
		return cat.ID != "" && cat.Name != ""
	}), nil
}

// Banners fetches the landing-page banners.
func (c *Client) Banners(ctx context.Context) ([]domain.Banner, error) {
	var raw []json.RawMessage
	if err := c.getJSON(ctx, "/api/banners", "", &raw); err != nil {
		return nil, err
	}
	return decodeList(c, raw, func(b domain.Banner) bool {
		return b.ImageURL != ""
	}), nil
}

// Reviews fetches the reviews for a product.
func (c *Client) Reviews(ctx context.Context, productID string) ([]domain.Review, error) {
	var raw []json.RawMessage
	if err := c.getJSON(ctx, "/api/reviews/"+productID, "", &raw); err != nil {
		return nil, err
	}
	return decodeList(c, raw, func(r domain.Review) bool {
		return r.Comment != "" || r.Rating > 0
	}), nil
}

// PostReview submits a review for a product.
func (c *Client) PostReview(ctx context.Context, productID string, review domain.Review) error {
	return c.postJSON(ctx, "/api/reviews/"+productID, "", review, nil)
}

// Testimonials fetches testimonials, optionally only active ones.
func (c *Client) Testimonials(ctx context.Context, activeOnly bool) ([]domain.Testimonial, error) {
	path := "/api/testimonials"
	if activeOnly {
		path += "?active=true"
	}
	var raw []json.RawMessage
	if err := c.getJSON(ctx, path, "", &raw); err != nil {
		return nil, err
	}
	return decodeList(c, raw, func(t domain.Testimonial) bool {
		return t.Message != ""
	}), nil
}

// PostTestimonial submits a testimonial.
func (c *Client) PostTestimonial(ctx context.Context, t domain.Testimonial) error {
	return c.postJSON(ctx, "/api/testimonials", "", t, nil)
}
