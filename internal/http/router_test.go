package apphttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atish-2023/Ecommerce-Website/internal/config"
	"github.com/atish-2023/Ecommerce-Website/internal/modules/checkout"
	"github.com/atish-2023/Ecommerce-Website/internal/modules/orders"
	"github.com/atish-2023/Ecommerce-Website/internal/modules/payments"
	"github.com/atish-2023/Ecommerce-Website/internal/modules/users"
	"github.com/atish-2023/Ecommerce-Website/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockProvider struct {
	Session    payments.Session
	SessionErr error
	Status     payments.SessionStatus
	StatusErr  error
	Event      payments.WebhookEvent
	VerifyErr  error
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) CreateCheckoutSession(_ context.Context, _ payments.CreateSessionRequest) (payments.Session, error) {
	if m.SessionErr != nil {
		return payments.Session{}, m.SessionErr
	}
	return m.Session, nil
}

func (m *mockProvider) RetrieveSession(_ context.Context, _ string) (payments.SessionStatus, error) {
	if m.StatusErr != nil {
		return payments.SessionStatus{}, m.StatusErr
	}
	return m.Status, nil
}

func (m *mockProvider) VerifyWebhook(_ []byte, _ string) (payments.WebhookEvent, error) {
	if m.VerifyErr != nil {
		return payments.WebhookEvent{}, m.VerifyErr
	}
	return m.Event, nil
}

func newTestRouter(t *testing.T, p payments.Provider) (*gin.Engine, orders.Store) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	cfg := config.Config{
		Port:        "4242",
		FrontendURL: "http://localhost:4200",
		JWTSecret:   []byte("test-secret"),
	}

	docs := storage.NewLocal(t.TempDir())
	orderStore := orders.NewFileStore(docs, "orders.json")
	userSvc := users.NewService(users.NewFileStore(docs, "users.json"), cfg.JWTSecret, logger)

	r := NewRouter(Deps{
		Logger:   logger,
		Cfg:      cfg,
		Provider: p,
		Orders:   orderStore,
		Users:    userSvc,
		Checkout: checkout.NewService(p, orderStore, logger, cfg.FrontendURL),
		Webhooks: payments.NewWebhookService(logger),
	})
	return r, orderStore
}

func doJSON(r *gin.Engine, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoot_Banner(t *testing.T) {
	r, _ := newTestRouter(t, &mockProvider{})

	w := doJSON(r, http.MethodGet, "/", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ecommerce Backend with Stripe Integration", w.Body.String())
}

func validCheckoutBody() gin.H {
	return gin.H{
		"cartItems": []gin.H{
			{"product": gin.H{"id": "p1", "title": "Shirt", "price": 19.99}, "quantity": 2},
		},
		"customerInfo": gin.H{
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"email":     "ada@example.com",
		},
	}
}

func TestCreateCheckoutSession_Success(t *testing.T) {
	p := &mockProvider{Session: payments.Session{ID: "cs_test_123", URL: "https://checkout.stripe.com/pay/cs_test_123"}}
	r, store := newTestRouter(t, p)

	w := doJSON(r, http.MethodPost, "/create-checkout-session", validCheckoutBody(), nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		SessionID string `json:"sessionId"`
		URL       string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cs_test_123", resp.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_123", resp.URL)

	rec, err := store.FindBySessionID(context.Background(), "cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, orders.StatusPendingPayment, rec.Status)
}

func TestCreateCheckoutSession_EmptyCart(t *testing.T) {
	r, _ := newTestRouter(t, &mockProvider{})

	w := doJSON(r, http.MethodPost, "/create-checkout-session", gin.H{
		"cartItems":    []gin.H{},
		"customerInfo": gin.H{"email": "ada@example.com"},
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Cart items are required"}`, w.Body.String())
}

func TestCreateCheckoutSession_MissingCustomerInfo(t *testing.T) {
	r, _ := newTestRouter(t, &mockProvider{})

	body := validCheckoutBody()
	delete(body, "customerInfo")
	w := doJSON(r, http.MethodPost, "/create-checkout-session", body, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Customer information is required"}`, w.Body.String())
}

func TestCreateCheckoutSession_BadEmail(t *testing.T) {
	r, _ := newTestRouter(t, &mockProvider{})

	body := validCheckoutBody()
	body["customerInfo"] = gin.H{"email": "not-an-email"}
	w := doJSON(r, http.MethodPost, "/create-checkout-session", body, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Valid customer email is required"}`, w.Body.String())
}

func TestSessionStatus_ProviderErrorIsFlat500(t *testing.T) {
	p := &mockProvider{StatusErr: errors.New("no such session")}
	r, _ := newTestRouter(t, p)

	w := doJSON(r, http.MethodGet, "/checkout-session/cs_missing", nil, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"no such session"}`, w.Body.String())
}

func TestSessionStatus_Success(t *testing.T) {
	p := &mockProvider{Status: payments.SessionStatus{
		Status:        "complete",
		PaymentStatus: "paid",
	}}
	r, _ := newTestRouter(t, p)

	w := doJSON(r, http.MethodGet, "/checkout-session/cs_test_123", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "complete", resp["status"])
	assert.Equal(t, "paid", resp["payment_status"])
}

func TestGetOrder_UnknownSession(t *testing.T) {
	r, _ := newTestRouter(t, &mockProvider{})

	w := doJSON(r, http.MethodGet, "/order/unknown-session", nil, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Order not found"}`, w.Body.String())
}

func TestGetOrder_RedactsCartToItemCount(t *testing.T) {
	p := &mockProvider{Session: payments.Session{ID: "cs_test_123"}}
	r, _ := newTestRouter(t, p)

	w := doJSON(r, http.MethodPost, "/create-checkout-session", validCheckoutBody(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/order/cs_test_123", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["itemCount"])
	assert.Equal(t, 89.98, resp["totalAmount"])
	assert.Equal(t, "pending_payment", resp["status"])
	assert.NotContains(t, resp, "cartItems")
	assert.NotContains(t, resp, "stripeSessionId")
}

func TestListOrders(t *testing.T) {
	p := &mockProvider{Session: payments.Session{ID: "cs_a"}}
	r, _ := newTestRouter(t, p)

	w := doJSON(r, http.MethodPost, "/create-checkout-session", validCheckoutBody(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/orders", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var all []orders.OrderRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 1)
	assert.Equal(t, "cs_a", all[0].StripeSessionID)
}

func TestWebhook_BadSignature(t *testing.T) {
	p := &mockProvider{VerifyErr: errors.New("signature mismatch")}
	r, _ := newTestRouter(t, p)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=bad")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "Webhook Error:"), w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestWebhook_Acknowledged(t *testing.T) {
	p := &mockProvider{Event: payments.WebhookEvent{
		ID:        "evt_1",
		Type:      "checkout.session.completed",
		SessionID: "cs_test_123",
	}}
	r, _ := newTestRouter(t, p)

	w := doJSON(r, http.MethodPost, "/webhook", gin.H{}, map[string]string{"Stripe-Signature": "t=1,v1=ok"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
}

func TestWebhook_DoesNotAdvanceOrderStatus(t *testing.T) {
	p := &mockProvider{
		Session: payments.Session{ID: "cs_test_123"},
		Event: payments.WebhookEvent{
			ID:        "evt_1",
			Type:      "checkout.session.completed",
			SessionID: "cs_test_123",
		},
	}
	r, store := newTestRouter(t, p)

	w := doJSON(r, http.MethodPost, "/create-checkout-session", validCheckoutBody(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/webhook", gin.H{}, map[string]string{"Stripe-Signature": "t=1,v1=ok"})
	require.Equal(t, http.StatusOK, w.Code)

	rec, err := store.FindBySessionID(context.Background(), "cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, orders.StatusPendingPayment, rec.Status)
}

func TestAuth_RegisterLoginProfile(t *testing.T) {
	r, _ := newTestRouter(t, &mockProvider{})

	w := doJSON(r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "s3cret",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "ada@example.com",
		"password": "s3cret",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Token string          `json:"access_token"`
		User  json.RawMessage `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	w = doJSON(r, http.MethodGet, "/api/v1/auth/profile", nil, map[string]string{
		"Authorization": "Bearer " + login.Token,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "ada@example.com")
}

func TestAuth_ProfileWithoutToken(t *testing.T) {
	r, _ := newTestRouter(t, &mockProvider{})

	w := doJSON(r, http.MethodGet, "/api/v1/auth/profile", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_LoginMissingFields(t *testing.T) {
	r, _ := newTestRouter(t, &mockProvider{})

	w := doJSON(r, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "ada@example.com"}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Email and password are required", resp.Error)
	assert.Contains(t, resp.Fields, "password")
}

func TestListUsers_PasswordsStripped(t *testing.T) {
	r, _ := newTestRouter(t, &mockProvider{})

	for i := 0; i < 2; i++ {
		w := doJSON(r, http.MethodPost, "/api/v1/auth/register", gin.H{
			"name":     fmt.Sprintf("User %d", i),
			"email":    fmt.Sprintf("user%d@example.com", i),
			"password": "s3cret",
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(r, http.MethodGet, "/api/v1/users", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}
