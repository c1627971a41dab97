package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atish-2023/Ecommerce-Website/internal/modules/orders"
)

type OrdersHandler struct {
	Store orders.Store
}

func NewOrdersHandler(store orders.Store) *OrdersHandler {
	return &OrdersHandler{Store: store}
}

// GET /order/:sessionId
// Returns a redacted view; cart contents are reduced to a count.
func (h *OrdersHandler) GetBySession(c *gin.Context) {
	rec, err := h.Store.FindBySessionID(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId":      rec.OrderID,
		"customerInfo": rec.CustomerInfo,
		"itemCount":    len(rec.CartItems),
		"totalAmount":  rec.TotalAmount,
		"createdAt":    rec.CreatedAt,
		"status":       rec.Status,
	})
}

// GET /orders (testing/admin, unauthenticated)
func (h *OrdersHandler) List(c *gin.Context) {
	all, err := h.Store.All(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, all)
}
