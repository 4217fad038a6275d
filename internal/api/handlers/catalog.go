package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/meharshop/storefront/internal/backend"
	"github.com/meharshop/storefront/internal/domain"
)

// Catalog fetches proxy the shop API. A failed fetch renders as an empty
// list so the views degrade gracefully instead of erroring.

// HandleProducts handles GET /products
func HandleProducts(client *backend.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := client.Products(c.Request.Context())
		if err != nil {
			logger.Warn("Failed to fetch products", zap.Error(err))
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

// HandleProduct handles GET /products/:id
func HandleProduct(client *backend.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := client.Product(c.Request.Context(), c.Param("id"))
		if err != nil {
			logger.Warn("Failed to fetch product", zap.String("id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// HandleCategories handles GET /categories
func HandleCategories(client *backend.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := client.Categories(c.Request.Context())
		if err != nil {
			logger.Warn("Failed to fetch categories", zap.Error(err))
			categories = []domain.Category{}
		}
		c.JSON(http.StatusOK, categories)
	}
}

// HandleBanners handles GET /banners
func HandleBanners(client *backend.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		banners, err := client.Banners(c.Request.Context())
		if err != nil {
			logger.Warn("Failed to fetch banners", zap.Error(err))
			banners = []domain.Banner{}
		}
		c.JSON(http.StatusOK, banners)
	}
}

// HandleReviews handles GET /reviews/:productId
func HandleReviews(client *backend.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, err := client.Reviews(c.Request.Context(), c.Param("productId"))
		if err != nil {
			logger.Warn("Failed to fetch reviews", zap.Error(err))
			reviews = []domain.Review{}
		}
		c.JSON(http.StatusOK, reviews)
	}
}

// HandlePostReview handles POST /reviews/:productId
func HandlePostReview(client *backend.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var review domain.Review
		if err := c.ShouldBindJSON(&review); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}
		if err := client.PostReview(c.Request.Context(), c.Param("productId"), review); err != nil {
			logger.Error("Failed to post review", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to post review"})
			return
		}
		c.Status(http.StatusCreated)
	}
}

// HandleTestimonials handles GET /testimonials
func HandleTestimonials(client *backend.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		activeOnly := c.Query("active") == "true"
		testimonials, err := client.Testimonials(c.Request.Context(), activeOnly)
		if err != nil {
			logger.Warn("Failed to fetch testimonials", zap.Error(err))
			testimonials = []domain.Testimonial{}
		}
		c.JSON(http.StatusOK, testimonials)
	}
}

// HandlePostTestimonial handles POST /testimonials
func HandlePostTestimonial(client *backend.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var t domain.Testimonial
		if err := c.ShouldBindJSON(&t); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}
		if err := client.PostTestimonial(c.Request.Context(), t); err != nil {
			logger.Error("Failed to post testimonial", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to post testimonial"})
			return
		}
		c.Status(http.StatusCreated)
	}
}
