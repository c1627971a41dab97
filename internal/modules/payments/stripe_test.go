package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripe "github.com/stripe/stripe-go/v82"

	"github.com/atish-2023/Ecommerce-Website/internal/shared/apperr"
)

const testWebhookSecret = "whsec_test_secret"

func signPayload(secret string, t int64, body []byte) string {
	m := hmac.New(sha256.New, []byte(secret))
	m.Write([]byte(strconv.FormatInt(t, 10)))
	m.Write([]byte("."))
	m.Write(body)
	return fmt.Sprintf("t=%d,v1=%s", t, hex.EncodeToString(m.Sum(nil)))
}

func eventBody(eventType, sessionID string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":"evt_1","object":"event","type":"%s","data":{"object":{"id":"%s","object":"checkout.session"}}}`,
		eventType, sessionID,
	))
}

func TestVerifyWebhook_ValidSignature(t *testing.T) {
	p := NewStripe("sk_test_x", testWebhookSecret)
	body := eventBody("checkout.session.completed", "cs_test_123")
	header := signPayload(testWebhookSecret, time.Now().Unix(), body)

	ev, err := p.VerifyWebhook(body, header)

	require.NoError(t, err)
	assert.Equal(t, "evt_1", ev.ID)
	assert.Equal(t, "checkout.session.completed", ev.Type)
	assert.Equal(t, "cs_test_123", ev.SessionID)
}

func TestVerifyWebhook_TamperedBodyRejected(t *testing.T) {
	p := NewStripe("sk_test_x", testWebhookSecret)
	body := eventBody("checkout.session.completed", "cs_test_123")
	header := signPayload(testWebhookSecret, time.Now().Unix(), body)

	tampered := eventBody("checkout.session.completed", "cs_test_456")
	_, err := p.VerifyWebhook(tampered, header)

	assert.Error(t, err)
}

func TestVerifyWebhook_WrongSecretRejected(t *testing.T) {
	p := NewStripe("sk_test_x", testWebhookSecret)
	body := eventBody("checkout.session.completed", "cs_test_123")
	header := signPayload("whsec_other", time.Now().Unix(), body)

	_, err := p.VerifyWebhook(body, header)

	assert.Error(t, err)
}

func TestVerifyWebhook_GarbageHeaderRejected(t *testing.T) {
	p := NewStripe("sk_test_x", testWebhookSecret)

	_, err := p.VerifyWebhook(eventBody("checkout.session.completed", "cs_1"), "not-a-signature")

	assert.Error(t, err)
}

func TestMapStripeError_Taxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        *stripe.Error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "card error",
			err:        &stripe.Error{Type: stripe.ErrorTypeCard, Msg: "Your card was declined."},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Card error: Your card was declined.",
		},
		{
			name:       "invalid request",
			err:        &stripe.Error{Type: stripe.ErrorTypeInvalidRequest, Msg: "Missing required param.", HTTPStatusCode: http.StatusBadRequest},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid request: Missing required param.",
		},
		{
			name:       "api unavailable",
			err:        &stripe.Error{Type: stripe.ErrorTypeAPI, Msg: "Something is wrong on Stripe's end."},
			wantStatus: http.StatusBadGateway,
			wantMsg:    "Stripe API is temporarily unavailable",
		},
		{
			name:       "authentication",
			err:        &stripe.Error{Type: stripe.ErrorTypeInvalidRequest, Msg: "Invalid API Key provided.", HTTPStatusCode: http.StatusUnauthorized},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Authentication with Stripe failed",
		},
		{
			name:       "rate limited",
			err:        &stripe.Error{Type: stripe.ErrorTypeInvalidRequest, Msg: "Too many requests.", HTTPStatusCode: http.StatusTooManyRequests},
			wantStatus: http.StatusTooManyRequests,
			wantMsg:    "Too many requests to Stripe API",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mapped := mapStripeError(tc.err)
			assert.Equal(t, tc.wantStatus, apperr.HTTPStatus(mapped))
			assert.Equal(t, tc.wantMsg, apperr.PublicMessage(mapped))
		})
	}
}

func TestMapStripeError_UnknownIsOpaque(t *testing.T) {
	mapped := mapStripeError(fmt.Errorf("connection reset"))

	ae, ok := apperr.As(mapped)
	require.True(t, ok)
	assert.Equal(t, apperr.Internal, ae.Kind)
	assert.Equal(t, "Payment processing failed", ae.PublicMsg)
	assert.NotEmpty(t, ae.DebugID)
}
