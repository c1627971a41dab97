package payments

import "context"

// LineItem is the provider-facing shape of one cart row (or the synthetic
// shipping row). Amounts are integer cents.
type LineItem struct {
	Name            string
	Description     string
	Images          []string
	UnitAmountCents int64
	Quantity        int64
}

type CreateSessionRequest struct {
	LineItems     []LineItem
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
	Metadata      map[string]string
}

type Session struct {
	ID  string
	URL string
}

type SessionStatus struct {
	Status          string            `json:"status"`
	PaymentStatus   string            `json:"payment_status"`
	CustomerDetails any               `json:"customer_details"`
	Metadata        map[string]string `json:"metadata"`
}

type WebhookEvent struct {
	ID        string
	Type      string
	SessionID string
	Raw       []byte
}

type Provider interface {
	Name() string
	CreateCheckoutSession(ctx context.Context, req CreateSessionRequest) (Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (SessionStatus, error)

	// VerifyWebhook checks the signature over the exact raw body bytes; the
	// body must not be decoded before verification.
	VerifyWebhook(body []byte, sigHeader string) (WebhookEvent, error)
}
