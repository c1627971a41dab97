package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/atish-2023/Ecommerce-Website/internal/shared/apperr"
)

// Stripe adapts the hosted Checkout API to the Provider interface.
type Stripe struct {
	webhookSecret string
}

func NewStripe(secretKey, webhookSecret string) *Stripe {
	stripe.Key = secretKey
	return &Stripe{webhookSecret: webhookSecret}
}

func (s *Stripe) Name() string { return "stripe" }

func (s *Stripe) CreateCheckoutSession(ctx context.Context, req CreateSessionRequest) (Session, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		CustomerEmail:      stripe.String(req.CustomerEmail),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	for _, li := range req.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name:        stripe.String(li.Name),
			Description: stripe.String(li.Description),
		}
		if len(li.Images) > 0 {
			productData.Images = stripe.StringSlice(li.Images)
		}
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(string(stripe.CurrencyUSD)),
				ProductData: productData,
				UnitAmount:  stripe.Int64(li.UnitAmountCents),
			},
			Quantity: stripe.Int64(li.Quantity),
		})
	}

	out, err := session.New(params)
	if err != nil {
		return Session{}, mapStripeError(err)
	}
	return Session{ID: out.ID, URL: out.URL}, nil
}

func (s *Stripe) RetrieveSession(ctx context.Context, sessionID string) (SessionStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	out, err := session.Get(sessionID, params)
	if err != nil {
		// Read path: surface the provider's message as-is.
		return SessionStatus{}, rawMessage(err)
	}
	return SessionStatus{
		Status:          string(out.Status),
		PaymentStatus:   string(out.PaymentStatus),
		CustomerDetails: out.CustomerDetails,
		Metadata:        out.Metadata,
	}, nil
}

func (s *Stripe) VerifyWebhook(body []byte, sigHeader string) (WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(body, sigHeader, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return WebhookEvent{}, err
	}

	ev := WebhookEvent{ID: event.ID, Type: string(event.Type), Raw: event.Data.Raw}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(event.Data.Raw, &obj); err == nil {
		ev.SessionID = obj.ID
	}
	return ev, nil
}

// mapStripeError translates provider failures into the error taxonomy used by
// the session-creation path. Authentication and rate-limit failures are
// recognized by HTTP status since the API reports both under
// invalid_request_error.
func mapStripeError(err error) error {
	var serr *stripe.Error
	if !errors.As(err, &serr) {
		return apperr.InternalErr("Payment processing failed", err)
	}

	switch {
	case serr.HTTPStatusCode == http.StatusUnauthorized:
		return apperr.UnauthorizedErr("Authentication with Stripe failed")
	case serr.HTTPStatusCode == http.StatusTooManyRequests:
		return apperr.RateLimitedErr("Too many requests to Stripe API")
	case serr.Type == stripe.ErrorTypeCard:
		return apperr.InvalidErr("Card error: "+serr.Msg, nil)
	case serr.Type == stripe.ErrorTypeInvalidRequest:
		return apperr.InvalidErr("Invalid request: "+serr.Msg, nil)
	case serr.Type == stripe.ErrorTypeAPI:
		return apperr.UnavailableErr("Stripe API is temporarily unavailable")
	default:
		return apperr.InternalErr("Payment processing failed", err)
	}
}

func rawMessage(err error) error {
	var serr *stripe.Error
	if errors.As(err, &serr) && serr.Msg != "" {
		return errors.New(serr.Msg)
	}
	return err
}
