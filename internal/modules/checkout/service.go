package checkout

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/atish-2023/Ecommerce-Website/internal/modules/orders"
	"github.com/atish-2023/Ecommerce-Website/internal/modules/payments"
	"github.com/atish-2023/Ecommerce-Website/internal/shared/apperr"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Service creates checkout sessions: validate input, build line items, create
// the provider session, append the order record. Validation runs before the
// provider call so malformed requests never reach the network.
type Service struct {
	provider        payments.Provider
	store           orders.Store
	logger          *slog.Logger
	frontendURL     string
	shippingDollars float64
}

func NewService(p payments.Provider, store orders.Store, logger *slog.Logger, frontendURL string) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider:        p,
		store:           store,
		logger:          logger,
		frontendURL:     strings.TrimRight(frontendURL, "/"),
		shippingDollars: ShippingCostDollars,
	}
}

type CreateSessionInput struct {
	CartItems []orders.CartItem
	Customer  orders.CustomerInfo
}

type CreateSessionResult struct {
	SessionID string
	URL       string
}

func (s *Service) CreateSession(ctx context.Context, in CreateSessionInput) (CreateSessionResult, error) {
	if len(in.CartItems) == 0 {
		return CreateSessionResult{}, apperr.InvalidErr("Cart items are required", nil)
	}
	if in.Customer.Email == "" || !strings.Contains(in.Customer.Email, "@") {
		return CreateSessionResult{}, apperr.InvalidErr("Valid customer email is required", nil)
	}

	lineItems, err := BuildLineItems(in.CartItems, s.shippingDollars)
	if err != nil {
		return CreateSessionResult{}, err
	}
	if len(lineItems) == 0 {
		return CreateSessionResult{}, apperr.InvalidErr("No valid items in cart", nil)
	}

	now := time.Now()
	orderID := fmt.Sprintf("order_%d_%s", now.UnixMilli(), randBase36(9))
	orderRef := fmt.Sprintf("ref_%d", now.UnixMilli())

	// Metadata values share Stripe's aggregate size limit; the name is the
	// only field long enough to need truncation.
	customerName := in.Customer.FirstName + " " + in.Customer.LastName
	if len(customerName) > 100 {
		customerName = customerName[:100]
	}

	sess, err := s.provider.CreateCheckoutSession(ctx, payments.CreateSessionRequest{
		LineItems:     lineItems,
		SuccessURL:    s.frontendURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.frontendURL + "/checkout/cancel",
		CustomerEmail: in.Customer.Email,
		Metadata: map[string]string{
			"orderId":        orderID,
			"customerEmail":  in.Customer.Email,
			"itemCount":      strconv.Itoa(len(in.CartItems)),
			"customerName":   customerName,
			"orderReference": orderRef,
		},
	})
	if err != nil {
		return CreateSessionResult{}, err
	}

	var totalCents int64
	for _, li := range lineItems {
		totalCents += li.UnitAmountCents * li.Quantity
	}

	rec := orders.OrderRecord{
		OrderID:         orderID,
		OrderReference:  orderRef,
		CustomerInfo:    in.Customer,
		CartItems:       in.CartItems,
		TotalAmount:     float64(totalCents) / 100,
		StripeSessionID: sess.ID,
		CreatedAt:       now.UTC().Format(isoMillis),
		Status:          orders.StatusPendingPayment,
	}
	if err := s.store.Append(ctx, rec); err != nil {
		// The provider session already exists at this point; a failed append
		// leaves it without a matching record.
		s.logger.ErrorContext(ctx, "order append failed after session create",
			"order_id", orderID, "session_id", sess.ID, "err", err)
		return CreateSessionResult{}, apperr.InternalErr("Payment processing failed", err)
	}

	s.logger.InfoContext(ctx, "order stored",
		"order_id", orderID,
		"customer", in.Customer.Email,
		"items", len(in.CartItems),
		"total", rec.TotalAmount,
		"session_id", sess.ID,
	)

	return CreateSessionResult{SessionID: sess.ID, URL: sess.URL}, nil
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randBase36(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = base36[int(b[i])%len(base36)]
	}
	return string(b)
}
