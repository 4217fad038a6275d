package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/meharshop/storefront/internal/cart"
	"github.com/meharshop/storefront/internal/checkout"
	"github.com/meharshop/storefront/internal/domain"
	"github.com/meharshop/storefront/pkg/errors"
)

// CreateDraftRequest represents the go-to-checkout payload
type CreateDraftRequest struct {
	ShippingAddress string `json:"shippingAddress" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
}

// ChooseMethodRequest represents the payment method selection
type ChooseMethodRequest struct {
	Method string `json:"method" binding:"required"`
}

// ConfirmRequest carries the optional payment reference
type ConfirmRequest struct {
	Reference string `json:"reference"`
}

// FlowResponse represents the payment step's visible state
type FlowResponse struct {
	State       domain.CheckoutState `json:"state"`
	Method      domain.PaymentMethod `json:"method"`
	BankDetails []domain.BankDetail  `json:"bankDetails,omitempty"`
	ProofURL    string               `json:"proofUrl,omitempty"`
}

// HandleCreateDraft handles POST /checkout
func HandleCreateDraft(store *cart.Store, drafts *checkout.Drafts, flow *checkout.Flow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateDraftRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		items := store.Items()
		if len(items) == 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "cart is empty"})
			return
		}

		draft, err := drafts.Create(items, domain.ContactInfo{
			ShippingAddress: req.ShippingAddress,
			Name:            req.Name,
			Email:           req.Email,
			Phone:           req.Phone,
		})
		if err != nil {
			logger.Error("Failed to create checkout draft", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		// A new draft starts the payment step over.
		flow.Reset()

		c.JSON(http.StatusCreated, draft)
	}
}

// HandleGetDraft handles GET /checkout
func HandleGetDraft(drafts *checkout.Drafts, flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, ok := drafts.Consume()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "checkout not started"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"draft": draft,
			"state": flow.State(),
		})
	}
}

// HandleUpdateInvoice handles PUT /checkout/invoice
func HandleUpdateInvoice(drafts *checkout.Drafts, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var inv domain.InvoiceInfo
		if err := c.ShouldBindJSON(&inv); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		draft, err := drafts.UpdateInvoice(inv)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "checkout not started"})
			return
		}
		c.JSON(http.StatusOK, draft)
	}
}

// HandleChooseMethod handles POST /checkout/method
func HandleChooseMethod(flow *checkout.Flow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChooseMethodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		method := domain.PaymentMethod(req.Method)
		if !method.IsValid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown payment method"})
			return
		}

		totals, err := flow.ChooseMethod(method)
		if err != nil {
			respondFlowError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, totals)
	}
}

// HandleTotals handles GET /checkout/totals
func HandleTotals(flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		totals, err := flow.Totals()
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "checkout not started"})
			return
		}
		c.JSON(http.StatusOK, totals)
	}
}

// HandleConfirm handles POST /checkout/confirm
func HandleConfirm(flow *checkout.Flow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ConfirmRequest
		if err := c.ShouldBindJSON(&req); err == nil && req.Reference != "" {
			flow.SetReference(req.Reference)
		}

		if err := flow.Confirm(c.Request.Context()); err != nil {
			respondFlowError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, FlowResponse{
			State:       flow.State(),
			Method:      flow.Method(),
			BankDetails: flow.BankDetails(),
			ProofURL:    flow.ProofURL(),
		})
	}
}

// HandleUploadProof handles POST /checkout/proof (multipart, single file)
func HandleUploadProof(flow *checkout.Flow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		src, err := file.Open()
		if err != nil {
			logger.Error("Failed to open uploaded file", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		defer src.Close()

		if err := flow.UploadProof(c.Request.Context(), file.Filename, src); err != nil {
			respondFlowError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"proofUrl": flow.ProofURL()})
	}
}

// HandleBack handles POST /checkout/back
func HandleBack(flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := flow.Back(); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, FlowResponse{State: flow.State(), Method: flow.Method()})
	}
}

// HandlePlaceOrder handles POST /checkout/order
func HandlePlaceOrder(flow *checkout.Flow, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := flow.PlaceOrder(c.Request.Context()); err != nil {
			respondFlowError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, FlowResponse{State: flow.State(), Method: flow.Method()})
	}
}

// respondFlowError maps checkout errors to HTTP statuses. Submission
// failures keep the flow retryable, so they surface as actionable errors
// rather than generic 500s.
func respondFlowError(c *gin.Context, logger *zap.Logger, err error) {
	var transition *errors.ErrInvalidStateTransition
	switch {
	case stderrors.Is(err, errors.ErrNoDraft):
		c.JSON(http.StatusNotFound, gin.H{"error": "checkout not started"})
	case stderrors.Is(err, errors.ErrProofRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case stderrors.Is(err, errors.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case stderrors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Checkout operation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
