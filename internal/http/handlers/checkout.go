package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atish-2023/Ecommerce-Website/internal/http/middleware"
	"github.com/atish-2023/Ecommerce-Website/internal/modules/checkout"
	"github.com/atish-2023/Ecommerce-Website/internal/modules/orders"
	"github.com/atish-2023/Ecommerce-Website/internal/modules/payments"
	"github.com/atish-2023/Ecommerce-Website/internal/shared/apperr"
)

type CheckoutHandler struct {
	Svc      *checkout.Service
	Provider payments.Provider
}

func NewCheckoutHandler(svc *checkout.Service, p payments.Provider) *CheckoutHandler {
	return &CheckoutHandler{Svc: svc, Provider: p}
}

type checkoutRequest struct {
	CartItems    []orders.CartItem    `json:"cartItems"`
	CustomerInfo *orders.CustomerInfo `json:"customerInfo"`
}

// POST /create-checkout-session
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var in checkoutRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Cart items are required", nil))
		return
	}
	if len(in.CartItems) == 0 {
		middleware.Fail(c, apperr.InvalidErr("Cart items are required", nil))
		return
	}
	if in.CustomerInfo == nil {
		middleware.Fail(c, apperr.InvalidErr("Customer information is required", nil))
		return
	}

	res, err := h.Svc.CreateSession(c.Request.Context(), checkout.CreateSessionInput{
		CartItems: in.CartItems,
		Customer:  *in.CustomerInfo,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": res.SessionID, "url": res.URL})
}

// GET /checkout-session/:sessionId
//
// Read path: provider failures collapse to a flat 500 carrying the raw
// provider message, unlike the session-creation path.
func (h *CheckoutHandler) SessionStatus(c *gin.Context) {
	status, err := h.Provider.RetrieveSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}
