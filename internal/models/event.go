package models

import "time"

const (
	EventBookingCreated          = "booking.created"
	EventBookingPaymentCompleted = "booking.payment_completed"
	EventBookingPaymentFailed    = "booking.payment_failed"
)

type BookingEvent struct {
	Type          string        `json:"type"`
	BookingID     string        `json:"bookingId"`
	UserID        string        `json:"userId"`
	PackageID     string        `json:"packageId"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	TotalAmount   float64       `json:"totalAmount"`
	Timestamp     time.Time     `json:"timestamp"`
}

func NewBookingEvent(eventType string, b Booking, now time.Time) BookingEvent {
	return BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		UserID:        b.UserID,
		PackageID:     b.PackageID,
		PaymentStatus: b.PaymentStatus,
		TotalAmount:   b.TotalAmount,
		Timestamp:     now.UTC(),
	}
}
