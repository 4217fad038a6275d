package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/meharshop/storefront/internal/api/handlers"
	"github.com/meharshop/storefront/internal/api/middleware"
	"github.com/meharshop/storefront/internal/auth"
	"github.com/meharshop/storefront/internal/backend"
	"github.com/meharshop/storefront/internal/cart"
	"github.com/meharshop/storefront/internal/checkout"
	"github.com/meharshop/storefront/internal/config"
)

// Deps are the constructed components the gateway renders.
type Deps struct {
	Cart    *cart.Store
	Bridge  *cart.Bridge
	Drafts  *checkout.Drafts
	Flow    *checkout.Flow
	Backend *backend.Client
	Tokens  *auth.Tokens
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, deps Deps, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Cart
	router.GET("/cart", handlers.HandleGetCart(deps.Cart, deps.Bridge))
	router.GET("/cart/count", handlers.HandleCartCount(deps.Bridge))
	router.POST("/cart/items", handlers.HandleAddCartItem(deps.Cart, logger))
	router.PATCH("/cart/items/:productId", handlers.HandleUpdateCartItem(deps.Cart, logger))
	router.DELETE("/cart/items/:productId", handlers.HandleRemoveCartItem(deps.Cart, logger))
	router.DELETE("/cart", handlers.HandleClearCart(deps.Cart, logger))

	// Checkout
	router.POST("/checkout", handlers.HandleCreateDraft(deps.Cart, deps.Drafts, deps.Flow, logger))
	router.GET("/checkout", handlers.HandleGetDraft(deps.Drafts, deps.Flow))
	router.PUT("/checkout/invoice", handlers.HandleUpdateInvoice(deps.Drafts, logger))
	router.POST("/checkout/method", handlers.HandleChooseMethod(deps.Flow, logger))
	router.GET("/checkout/totals", handlers.HandleTotals(deps.Flow))
	router.POST("/checkout/confirm", handlers.HandleConfirm(deps.Flow, logger))
	router.POST("/checkout/proof", handlers.HandleUploadProof(deps.Flow, logger))
	router.POST("/checkout/back", handlers.HandleBack(deps.Flow))
	router.POST("/checkout/order", handlers.HandlePlaceOrder(deps.Flow, logger))

	// Catalog (proxied from the shop API; fetch failures degrade to empty)
	router.GET("/products", handlers.HandleProducts(deps.Backend, logger))
	router.GET("/products/:id", handlers.HandleProduct(deps.Backend, logger))
	router.GET("/categories", handlers.HandleCategories(deps.Backend, logger))
	router.GET("/banners", handlers.HandleBanners(deps.Backend, logger))
	router.GET("/reviews/:productId", handlers.HandleReviews(deps.Backend, logger))
	router.POST("/reviews/:productId", handlers.HandlePostReview(deps.Backend, logger))
	router.GET("/testimonials", handlers.HandleTestimonials(deps.Backend, logger))
	router.POST("/testimonials", handlers.HandlePostTestimonial(deps.Backend, logger))

	// Auth & orders
	router.POST("/auth/login", handlers.HandleLogin(deps.Backend, deps.Tokens, logger))
	router.POST("/auth/register", handlers.HandleRegister(deps.Backend, deps.Tokens, logger))
	router.POST("/auth/logout", handlers.HandleLogout(deps.Tokens, logger))
	router.GET("/auth/session", handlers.HandleSession(deps.Tokens))
	router.GET("/orders/mine", handlers.HandleMyOrders(deps.Backend, deps.Tokens, logger))

	// Admin routes (hint-gated; handlers still re-check with the shop API)
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.AdminHintMiddleware(deps.Tokens, logger))
	{
		adminRoutes.GET("/overview", handlers.HandleAdminOverview(deps.Backend, logger))
	}

	return router
}
