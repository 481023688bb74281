package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/config"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
)

const defaultRazorpayURL = "https://api.razorpay.com"

var ErrRazorpayClientInitFailed = errors.New("failed to initialize Razorpay client")

// Razorpay talks to the Razorpay Orders REST API.
type Razorpay struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
	log       *logger.Logger
}

func NewRazorpay(keyID, keySecret, baseURL string, client *http.Client, log *logger.Logger) *Razorpay {
	if baseURL == "" {
		baseURL = defaultRazorpayURL
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Razorpay{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    client,
		log:       log,
	}
}

func (r *Razorpay) Name() string  { return config.ProviderRazorpay }
func (r *Razorpay) KeyID() string { return r.keyID }

type razorpayOrderBody struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type razorpayOrder struct {
	ID       string          `json:"id"`
	Amount   int64           `json:"amount"`
	Currency string          `json:"currency"`
	Receipt  string          `json:"receipt"`
	Status   string          `json:"status"`
	Notes    json.RawMessage `json:"notes,omitempty"`
}

// notes decodes the order notes. Razorpay sends an empty array, not an
// object, for an order created without any.
func (o razorpayOrder) notes() map[string]string {
	notes := map[string]string{}
	_ = json.Unmarshal(o.Notes, &notes)
	return notes
}

type razorpayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (r *Razorpay) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	payload, err := json.Marshal(razorpayOrderBody{
		Amount:   ToMinorUnits(req.Amount),
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding razorpay order: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building razorpay request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(r.keyID, r.keySecret)

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrGatewayRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr razorpayError
		_ = json.Unmarshal(body, &apiErr)
		r.log.LogPayment("ORDER_REJECTED", req.Receipt, fmt.Sprintf("status=%d code=%s %s", resp.StatusCode, apiErr.Error.Code, apiErr.Error.Description))
		return nil, fmt.Errorf("%w: status %d: %s", ErrGatewayRequest, resp.StatusCode, apiErr.Error.Description)
	}

	var order razorpayOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("%w: decoding order: %v", ErrGatewayRequest, err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: order id missing from response", ErrGatewayRequest)
	}

	r.log.LogPayment("ORDER_CREATED", order.ID, fmt.Sprintf("amount=%d %s receipt=%s", order.Amount, order.Currency, order.Receipt))
	return &Order{
		ID:          order.ID,
		AmountMinor: order.Amount,
		Currency:    order.Currency,
		Receipt:     order.Receipt,
		Status:      order.Status,
	}, nil
}

func (r *Razorpay) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/v1/orders/"+url.PathEscape(orderID), nil)
	if err != nil {
		return nil, fmt.Errorf("building razorpay request: %w", err)
	}
	httpReq.SetBasicAuth(r.keyID, r.keySecret)

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrGatewayRequest, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusBadRequest:
		r.log.LogPayment("ORDER_UNKNOWN", orderID, fmt.Sprintf("status=%d", resp.StatusCode))
		return nil, ErrOrderNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		var apiErr razorpayError
		_ = json.Unmarshal(body, &apiErr)
		return nil, fmt.Errorf("%w: status %d: %s", ErrGatewayRequest, resp.StatusCode, apiErr.Error.Description)
	}

	var order razorpayOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("%w: decoding order: %v", ErrGatewayRequest, err)
	}
	if order.ID != orderID {
		return nil, fmt.Errorf("%w: asked for order %s, got %q", ErrGatewayRequest, orderID, order.ID)
	}

	return &Order{
		ID:          order.ID,
		AmountMinor: order.Amount,
		Currency:    order.Currency,
		Receipt:     order.Receipt,
		Status:      order.Status,
		Notes:       order.notes(),
	}, nil
}

// VerifyPayment checks the checkout signature, hex HMAC-SHA256 of
// "orderID|paymentID" keyed with the account secret.
// An empty key secret proves nothing and rejects every payment.
func (r *Razorpay) VerifyPayment(_ context.Context, orderID, paymentID, signature string) error {
	if r.keySecret == "" {
		r.log.LogSecurity("PAYMENT_SIGNATURE_UNVERIFIABLE", fmt.Sprintf("order=%s payment=%s: key secret not configured", orderID, paymentID))
		return ErrSignatureMismatch
	}
	expected := Signature(r.keySecret, orderID, paymentID)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		r.log.LogSecurity("PAYMENT_SIGNATURE_MISMATCH", fmt.Sprintf("order=%s payment=%s", orderID, paymentID))
		return ErrSignatureMismatch
	}
	return nil
}

func Signature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
