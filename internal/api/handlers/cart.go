package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/meharshop/storefront/internal/cart"
	"github.com/meharshop/storefront/internal/domain"
)

// AddCartItemRequest represents the add-to-cart payload
type AddCartItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Title     string  `json:"title" binding:"required"`
	Price     float64 `json:"price" binding:"min=0"`
	ImageURL  string  `json:"imageUrl"`
	Quantity  int     `json:"quantity"`
}

// UpdateCartItemRequest represents the quantity update payload
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartResponse represents the cart contents
type CartResponse struct {
	Items []domain.CartItem `json:"items"`
	Count int               `json:"count"`
}

// HandleGetCart handles GET /cart
func HandleGetCart(store *cart.Store, bridge *cart.Bridge) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, CartResponse{
			Items: store.Items(),
			Count: bridge.Count(),
		})
	}
}

// HandleCartCount handles GET /cart/count
func HandleCartCount(bridge *cart.Bridge) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"count": bridge.Count()})
	}
}

// HandleAddCartItem handles POST /cart/items
func HandleAddCartItem(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		item := domain.CartItem{
			ProductID: req.ProductID,
			Title:     req.Title,
			Price:     req.Price,
			ImageURL:  req.ImageURL,
			Quantity:  req.Quantity,
		}
		if err := store.Add(item); err != nil {
			logger.Error("Failed to add cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, CartResponse{Items: store.Items()})
	}
}

// HandleUpdateCartItem handles PATCH /cart/items/:productId
func HandleUpdateCartItem(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := store.SetQuantity(c.Param("productId"), *req.Quantity); err != nil {
			logger.Error("Failed to update cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, CartResponse{Items: store.Items()})
	}
}

// HandleRemoveCartItem handles DELETE /cart/items/:productId
func HandleRemoveCartItem(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Remove(c.Param("productId")); err != nil {
			logger.Error("Failed to remove cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, CartResponse{Items: store.Items()})
	}
}

// HandleClearCart handles DELETE /cart
func HandleClearCart(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Clear(); err != nil {
			logger.Error("Failed to clear cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
