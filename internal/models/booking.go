package models

import (
	"time"

	"github.com/uptrace/bun"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Booking struct {
	bun.BaseModel `bun:"table:bookings" bson:"-"`

	ID                string        `bun:"id,pk" bson:"_id" json:"id"`
	PackageID         string        `bun:"package_id,notnull" bson:"package_id" json:"packageId"`
	PackageTitle      string        `bun:"package_title,notnull" bson:"package_title" json:"packageTitle"`
	UserID            string        `bun:"user_id,notnull" bson:"user_id" json:"userId"`
	UserEmail         string        `bun:"user_email,notnull" bson:"user_email" json:"userEmail"`
	Name              string        `bun:"name,notnull" bson:"name" json:"name"`
	Phone             string        `bun:"phone,notnull" bson:"phone" json:"phone"`
	Travellers        int           `bun:"travellers,notnull" bson:"travellers" json:"travellers"`
	StartDate         time.Time     `bun:"start_date,notnull" bson:"start_date" json:"startDate"`
	TotalAmount       float64       `bun:"total_amount,notnull" bson:"total_amount" json:"totalAmount"`
	PaymentStatus     PaymentStatus `bun:"payment_status,notnull" bson:"payment_status" json:"paymentStatus"`
	RazorpayOrderID   string        `bun:"razorpay_order_id,nullzero" bson:"razorpay_order_id,omitempty" json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string        `bun:"razorpay_payment_id,nullzero" bson:"razorpay_payment_id,omitempty" json:"razorpayPaymentId,omitempty"`
	RazorpaySignature string        `bun:"razorpay_signature,nullzero" bson:"razorpay_signature,omitempty" json:"razorpaySignature,omitempty"`
	CreatedAt         time.Time     `bun:"created_at,notnull" bson:"created_at" json:"createdAt"`
}

// BookingRequest is the client-supplied part of a booking. Price and owner
// are never taken from the client.
type BookingRequest struct {
	PackageID  string `json:"packageId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Travellers int    `json:"travellers"`
	StartDate  string `json:"startDate"`
}

// JoinedBooking is a booking with its package and owner resolved. Either may
// be nil when the referenced record no longer exists.
type JoinedBooking struct {
	Booking
	Package *Package    `json:"package"`
	User    *PublicUser `json:"user"`
}

type BookingStats struct {
	TotalPackages     int     `json:"totalPackages"`
	TotalBookings     int     `json:"totalBookings"`
	PendingBookings   int     `json:"pendingBookings"`
	CompletedBookings int     `json:"completedBookings"`
	FailedBookings    int     `json:"failedBookings"`
	TotalRevenue      float64 `json:"totalRevenue"`
}
