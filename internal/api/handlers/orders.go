package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/meharshop/storefront/internal/api/middleware"
	"github.com/meharshop/storefront/internal/auth"
	"github.com/meharshop/storefront/internal/backend"
)

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents the signup payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// HandleLogin handles POST /auth/login
func HandleLogin(client *backend.Client, tokens *auth.Tokens, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		token, err := client.Login(c.Request.Context(), backend.Credentials{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			logger.Warn("Login failed", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if err := tokens.Save(token); err != nil {
			logger.Error("Failed to persist token", zap.Error(err))
		}

		hint := auth.UIHint(token)
		c.JSON(http.StatusOK, gin.H{"token": token, "isAdminUi": hint.IsAdminUI})
	}
}

// HandleRegister handles POST /auth/register
func HandleRegister(client *backend.Client, tokens *auth.Tokens, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		token, err := client.Register(c.Request.Context(), backend.Credentials{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			logger.Warn("Registration failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "registration failed"})
			return
		}
		if token != "" {
			if err := tokens.Save(token); err != nil {
				logger.Error("Failed to persist token", zap.Error(err))
			}
		}
		c.JSON(http.StatusCreated, gin.H{"token": token})
	}
}

// HandleLogout handles POST /auth/logout
func HandleLogout(tokens *auth.Tokens, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := tokens.Clear(); err != nil {
			logger.Error("Failed to clear token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// HandleSession handles GET /auth/session. The admin flag is a rendering
// hint from the unverified token payload; the backend still decides.
func HandleSession(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokens.Load()
		hint := auth.UIHint(token)
		c.JSON(http.StatusOK, gin.H{
			"loggedIn":  token != "",
			"isAdminUi": hint.IsAdminUI,
		})
	}
}

// HandleMyOrders handles GET /orders/mine
func HandleMyOrders(client *backend.Client, tokens *auth.Tokens, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokens.Load()
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return
		}

		orders, err := client.MyOrders(c.Request.Context(), token)
		if err != nil {
			logger.Warn("Failed to fetch orders", zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"orders": []interface{}{}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// HandleAdminOverview handles GET /admin/overview. The route sits behind the
// admin hint middleware; the backend's /api/auth/me is the authorization
// decision.
func HandleAdminOverview(client *backend.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := middleware.GetTokenFromContext(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		user, err := client.Me(c.Request.Context(), token)
		if err != nil || user.Role != "admin" {
			if err != nil {
				logger.Warn("Admin re-check failed", zap.Error(err))
			}
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		products, err := client.Products(c.Request.Context())
		if err != nil {
			logger.Warn("Failed to fetch products", zap.Error(err))
		}
		categories, err := client.Categories(c.Request.Context())
		if err != nil {
			logger.Warn("Failed to fetch categories", zap.Error(err))
		}
		banners, err := client.Banners(c.Request.Context())
		if err != nil {
			logger.Warn("Failed to fetch banners", zap.Error(err))
		}

		c.JSON(http.StatusOK, gin.H{
			"user":       user,
			"products":   products,
			"categories": categories,
			"banners":    banners,
		})
	}
}
