package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/config"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
)

var ErrStripeClientInitFailed = errors.New("failed to initialize Stripe client")

// Stripe backs gateway orders with PaymentIntents. The order id is the
// intent id and a payment is proven once the intent has succeeded.
type Stripe struct {
	client         *client.API
	publishableKey string
	log            *logger.Logger
}

// NewStripe builds a Stripe gateway. backends may be nil to use the live API.
func NewStripe(secretKey, publishableKey string, backends *stripe.Backends, log *logger.Logger) (*Stripe, error) {
	if secretKey == "" {
		log.Error("STRIPE", "STRIPE_SECRET_KEY not set")
		return nil, ErrStripeClientInitFailed
	}

	sc := client.New(secretKey, backends)
	if sc == nil {
		return nil, ErrStripeClientInitFailed
	}

	log.Info("STRIPE", "Stripe client initialized successfully")
	return &Stripe{client: sc, publishableKey: publishableKey, log: log}, nil
}

func (s *Stripe) Name() string  { return config.ProviderStripe }
func (s *Stripe) KeyID() string { return s.publishableKey }

func (s *Stripe) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(ToMinorUnits(req.Amount)),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("receipt", req.Receipt)
	for k, v := range req.Notes {
		params.AddMetadata(k, v)
	}

	pi, err := s.client.PaymentIntents.New(params)
	if err != nil {
		s.log.Error("STRIPE", fmt.Sprintf("Failed to create payment intent for %s: %v", req.Receipt, err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayRequest, err)
	}

	s.log.LogPayment("INTENT_CREATED", pi.ID, fmt.Sprintf("amount=%d %s", pi.Amount, pi.Currency))
	return &Order{
		ID:           pi.ID,
		AmountMinor:  pi.Amount,
		Currency:     strings.ToUpper(string(pi.Currency)),
		Receipt:      req.Receipt,
		Status:       string(pi.Status),
		ClientSecret: pi.ClientSecret,
	}, nil
}

func (s *Stripe) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := s.client.PaymentIntents.Get(orderID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			s.log.LogPayment("INTENT_UNKNOWN", orderID, stripeErr.Msg)
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrGatewayRequest, err)
	}

	notes := make(map[string]string, len(pi.Metadata))
	for k, v := range pi.Metadata {
		notes[k] = v
	}
	return &Order{
		ID:          pi.ID,
		AmountMinor: pi.Amount,
		Currency:    strings.ToUpper(string(pi.Currency)),
		Receipt:     notes["receipt"],
		Status:      string(pi.Status),
		Notes:       notes,
	}, nil
}

// VerifyPayment ignores signature; paymentID must name the intent itself.
func (s *Stripe) VerifyPayment(ctx context.Context, orderID, paymentID, _ string) error {
	if paymentID != orderID {
		s.log.LogSecurity("PAYMENT_INTENT_MISMATCH", fmt.Sprintf("order=%s payment=%s", orderID, paymentID))
		return ErrSignatureMismatch
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := s.client.PaymentIntents.Get(orderID, params)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayRequest, err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		s.log.LogPayment("INTENT_NOT_SUCCEEDED", pi.ID, fmt.Sprintf("status=%s", pi.Status))
		return ErrPaymentNotCompleted
	}
	return nil
}
