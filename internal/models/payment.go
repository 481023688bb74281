package models

import "time"

type PaymentOrderRequest struct {
	PackageID  string `json:"packageId"`
	Travellers int    `json:"travellers"`
}

// PaymentOrderResponse is what the checkout widget needs to open a payment.
type PaymentOrderResponse struct {
	Success      bool    `json:"success"`
	OrderID      string  `json:"orderId"`
	Amount       float64 `json:"amount"`
	AmountMinor  int64   `json:"amountMinor"`
	Currency     string  `json:"currency"`
	KeyID        string  `json:"keyId"`
	PackageTitle string  `json:"packageTitle"`
	Provider     string  `json:"provider"`
	ClientSecret string  `json:"clientSecret,omitempty"`
}

type VerifyPaymentRequest struct {
	OrderID        string         `json:"razorpay_order_id"`
	PaymentID      string         `json:"razorpay_payment_id"`
	Signature      string         `json:"razorpay_signature"`
	BookingDetails BookingRequest `json:"bookingDetails"`
}

type PaymentFailedRequest struct {
	OrderID        string         `json:"orderId"`
	BookingDetails BookingRequest `json:"bookingDetails"`
}

type PaymentResultResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	BookingID string `json:"bookingId"`
}

// PaymentHold records who opened a gateway order and for what.
type PaymentHold struct {
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	PackageID  string    `json:"packageId"`
	Travellers int       `json:"travellers"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"createdAt"`
}
