package payment

import (
	"context"
	"errors"
	"math"
)

var (
	ErrSignatureMismatch   = errors.New("payment signature mismatch")
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrGatewayRequest      = errors.New("payment gateway request failed")
	ErrOrderNotFound       = errors.New("payment order not found")
)

// OrderRequest is a gateway order in major currency units. Amount is
// converted to the gateway's smallest unit before it leaves the process.
type OrderRequest struct {
	Amount   float64
	Currency string
	Receipt  string
	Notes    map[string]string
}

type Order struct {
	ID           string
	AmountMinor  int64
	Currency     string
	Receipt      string
	Status       string
	ClientSecret string
	Notes        map[string]string
}

// Gateway creates payment orders and checks the proof a client returns after
// paying one.
type Gateway interface {
	Name() string
	// KeyID is the public key the checkout widget is opened with.
	KeyID() string
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	// FetchOrder returns an order with the notes it was created with.
	FetchOrder(ctx context.Context, orderID string) (*Order, error)
	// VerifyPayment returns nil only when the payment for orderID is proven.
	VerifyPayment(ctx context.Context, orderID, paymentID, signature string) error
}

// ToMinorUnits converts a major-unit amount (rupees) to paise.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
