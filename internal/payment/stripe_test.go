package payment

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
)

func newTestStripe(t *testing.T, handler http.HandlerFunc) *Stripe {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		HTTPClient:        srv.Client(),
		MaxNetworkRetries: stripe.Int64(0),
	})
	s, err := NewStripe("sk_test_123", "pk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend}, logger.NewLoggerWithWriter(io.Discard))
	require.NoError(t, err)
	return s
}

func TestNewStripe_RequiresKey(t *testing.T) {
	_, err := NewStripe("", "", nil, logger.NewLoggerWithWriter(io.Discard))
	assert.ErrorIs(t, err, ErrStripeClientInitFailed)
}

func TestStripeCreateOrder(t *testing.T) {
	s := newTestStripe(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "600000", r.PostForm.Get("amount"))
		assert.Equal(t, "inr", r.PostForm.Get("currency"))
		assert.Equal(t, "p1", r.PostForm.Get("metadata[packageId]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"pi_123","object":"payment_intent","amount":600000,"currency":"inr","status":"requires_payment_method","client_secret":"pi_123_secret"}`)
	})

	order, err := s.CreateOrder(context.Background(), OrderRequest{
		Amount:   6000,
		Currency: "INR",
		Receipt:  "receipt_1",
		Notes:    map[string]string{"packageId": "p1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_123", order.ID)
	assert.Equal(t, "pi_123_secret", order.ClientSecret)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "pk_test_123", s.KeyID())
}

func TestStripeVerifyPayment(t *testing.T) {
	status := "succeeded"
	s := newTestStripe(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents/pi_123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"pi_123","object":"payment_intent","amount":100,"currency":"inr","status":"`+status+`"}`)
	})
	ctx := context.Background()

	assert.NoError(t, s.VerifyPayment(ctx, "pi_123", "pi_123", ""))
	assert.ErrorIs(t, s.VerifyPayment(ctx, "pi_123", "pi_other", ""), ErrSignatureMismatch)

	status = "requires_payment_method"
	assert.ErrorIs(t, s.VerifyPayment(ctx, "pi_123", "pi_123", ""), ErrPaymentNotCompleted)
}

func TestStripeFetchOrder(t *testing.T) {
	s := newTestStripe(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/v1/payment_intents/pi_missing" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such payment_intent: 'pi_missing'"}}`)
			return
		}
		assert.Equal(t, "/v1/payment_intents/pi_123", r.URL.Path)
		_, _ = io.WriteString(w, `{"id":"pi_123","object":"payment_intent","amount":600000,"currency":"inr","status":"succeeded","metadata":{"receipt":"receipt_1","packageId":"p1","travellers":"3","userId":"u1"}}`)
	})
	ctx := context.Background()

	order, err := s.FetchOrder(ctx, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "receipt_1", order.Receipt)
	assert.Equal(t, "p1", order.Notes["packageId"])
	assert.Equal(t, "3", order.Notes["travellers"])
	assert.Equal(t, "u1", order.Notes["userId"])

	_, err = s.FetchOrder(ctx, "pi_missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
