package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atish-2023/Ecommerce-Website/internal/modules/payments"
)

type WebhookHandler struct {
	Logger   *slog.Logger
	Provider payments.Provider
	Svc      *payments.WebhookService
}

func NewWebhookHandler(logger *slog.Logger, p payments.Provider, svc *payments.WebhookService) *WebhookHandler {
	return &WebhookHandler{Logger: logger, Provider: p, Svc: svc}
}

// POST /webhook
// The signature covers the exact body bytes, so the body is verified raw.
// Failures answer in plain text per the provider's webhook contract, not the
// JSON convention used elsewhere.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "Webhook Error: %s", err.Error())
		return
	}

	ev, err := h.Provider.VerifyWebhook(body, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.Logger.Warn("webhook signature verification failed", "err", err)
		c.String(http.StatusBadRequest, "Webhook Error: %s", err.Error())
		return
	}

	h.Svc.Handle(c.Request.Context(), ev)
	c.JSON(http.StatusOK, gin.H{"received": true})
}
