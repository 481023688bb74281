package booking_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bookingredis "github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/booking/redis"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/domain"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/payment"
)

const keySecret = "rzp_secret"

type paymentEnv struct {
	*testEnv
	mr          *miniredis.Miniredis
	lastRequest map[string]interface{}
	// orders holds the notes of every order the fake gateway has created,
	// keyed by order id.
	orders map[string]map[string]interface{}
	fetches atomic.Int32
}

func newPaymentEnv(t *testing.T) *paymentEnv {
	env := &paymentEnv{testEnv: newTestEnv(t), orders: map[string]map[string]interface{}{}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			env.fetches.Add(1)
			id := strings.TrimPrefix(r.URL.Path, "/v1/orders/")
			notes, ok := env.orders[id]
			if !ok {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, `{"error":{"code":"BAD_REQUEST_ERROR","description":"The id provided does not exist"}}`)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id": id, "amount": 600000, "currency": "INR", "receipt": "r", "status": "paid", "notes": notes,
			})
			return
		}

		env.lastRequest = map[string]interface{}{}
		_ = json.NewDecoder(r.Body).Decode(&env.lastRequest)
		notes, _ := env.lastRequest["notes"].(map[string]interface{})
		env.orders["order_test"] = notes
		_, _ = io.WriteString(w, `{"id":"order_test","amount":600000,"currency":"INR","receipt":"r","status":"created"}`)
	}))
	t.Cleanup(srv.Close)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	env.mr = mr

	log := logger.NewLoggerWithWriter(io.Discard)
	env.svc.Gateway = payment.NewRazorpay("rzp_key", keySecret, srv.URL, srv.Client(), log)
	env.svc.Holds = bookingredis.NewHolds(client, 30*time.Minute, log)
	return env
}

func verifyRequest(orderID, paymentID, signature string) models.VerifyPaymentRequest {
	return models.VerifyPaymentRequest{
		OrderID:        orderID,
		PaymentID:      paymentID,
		Signature:      signature,
		BookingDetails: validInput("goa"),
	}
}

func TestCreatePaymentOrder(t *testing.T) {
	env := newPaymentEnv(t)
	env.addPackage(t, "goa", 2000)
	actor := env.addUser(t, "u1", models.RoleUser)

	res, err := env.svc.CreatePaymentOrder(context.Background(), actor, models.PaymentOrderRequest{PackageID: "goa", Travellers: 3})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "order_test", res.OrderID)
	assert.Equal(t, 6000.0, res.Amount)
	assert.Equal(t, int64(600000), res.AmountMinor)
	assert.Equal(t, "INR", res.Currency)
	assert.Equal(t, "rzp_key", res.KeyID)
	assert.Equal(t, "Package goa", res.PackageTitle)

	assert.EqualValues(t, 600000, env.lastRequest["amount"])
	assert.Regexp(t, `^receipt_\d+$`, env.lastRequest["receipt"])
	notes := env.lastRequest["notes"].(map[string]interface{})
	assert.Equal(t, "u1", notes["userId"])
	assert.Equal(t, "3", notes["travellers"])

	hold, err := env.svc.Holds.GetHold(context.Background(), "order_test")
	require.NoError(t, err)
	require.NotNil(t, hold)
	assert.Equal(t, "u1", hold.UserID)
	assert.Equal(t, 6000.0, hold.Amount)
}

func TestCreatePaymentOrder_Rejections(t *testing.T) {
	env := newPaymentEnv(t)
	env.addPackage(t, "goa", 2000)
	actor := env.addUser(t, "u1", models.RoleUser)
	ctx := context.Background()

	_, err := env.svc.CreatePaymentOrder(ctx, actor, models.PaymentOrderRequest{PackageID: "goa", Travellers: 0})
	assert.True(t, domain.IsValidation(err))

	_, err = env.svc.CreatePaymentOrder(ctx, actor, models.PaymentOrderRequest{PackageID: "missing", Travellers: 1})
	assert.True(t, domain.IsNotFound(err))

	env.svc.Gateway = nil
	_, err = env.svc.CreatePaymentOrder(ctx, actor, models.PaymentOrderRequest{PackageID: "goa", Travellers: 1})
	assert.True(t, domain.IsInternal(err))
}

func TestVerifyPayment_SignatureMismatchNeverCompletes(t *testing.T) {
	env := newPaymentEnv(t)
	env.addPackage(t, "goa", 2000)
	actor := env.addUser(t, "u1", models.RoleUser)
	ctx := context.Background()

	good := payment.Signature(keySecret, "order_test", "pay_1")
	cases := map[string]string{
		"empty":      "",
		"wrong key":  payment.Signature("other", "order_test", "pay_1"),
		"truncated":  good[:63],
		"other pair": payment.Signature(keySecret, "order_test", "pay_2"),
	}
	for name, sig := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := env.svc.VerifyPayment(ctx, actor, verifyRequest("order_test", "pay_1", sig))
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.Equal(t, "Payment verification failed", err.Error())
		})
	}

	all, err := env.bookings.ListBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestVerifyPayment_CompletesBooking(t *testing.T) {
	env := newPaymentEnv(t)
	env.addPackage(t, "goa", 2000)
	actor := env.addUser(t, "u1", models.RoleUser)
	ctx := context.Background()

	_, err := env.svc.CreatePaymentOrder(ctx, actor, models.PaymentOrderRequest{PackageID: "goa", Travellers: 3})
	require.NoError(t, err)

	sig := payment.Signature(keySecret, "order_test", "pay_1")
	res, err := env.svc.VerifyPayment(ctx, actor, verifyRequest("order_test", "pay_1", sig))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Booking confirmed successfully!", res.Message)

	b, err := env.bookings.GetBookingByID(ctx, res.BookingID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, b.PaymentStatus)
	assert.Equal(t, 6000.0, b.TotalAmount)
	assert.Equal(t, "order_test", b.RazorpayOrderID)
	assert.Equal(t, "pay_1", b.RazorpayPaymentID)
	assert.Equal(t, sig, b.RazorpaySignature)

	assert.False(t, env.mr.Exists("payment_hold:order_test"), "hold consumed")
	env.events.AssertCalled(t, "PublishBookingEvent", mock.Anything, mock.MatchedBy(func(e models.BookingEvent) bool {
		return e.Type == models.EventBookingPaymentCompleted && e.BookingID == b.ID
	}))

	again, err := env.svc.VerifyPayment(ctx, actor, verifyRequest("order_test", "pay_1", sig))
	require.NoError(t, err)
	assert.Equal(t, res.BookingID, again.BookingID, "replayed verification is idempotent")

	all, err := env.bookings.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestVerifyPayment_HoldOwnedByAnotherUser(t *testing.T) {
	env := newPaymentEnv(t)
	env.addPackage(t, "goa", 2000)
	owner := env.addUser(t, "owner", models.RoleUser)
	thief := env.addUser(t, "thief", models.RoleUser)
	ctx := context.Background()

	_, err := env.svc.CreatePaymentOrder(ctx, owner, models.PaymentOrderRequest{PackageID: "goa", Travellers: 3})
	require.NoError(t, err)

	sig := payment.Signature(keySecret, "order_test", "pay_1")
	_, err = env.svc.VerifyPayment(ctx, thief, verifyRequest("order_test", "pay_1", sig))
	assert.True(t, domain.IsForbidden(err))
	assert.True(t, env.mr.Exists("payment_hold:order_test"))

	tampered := verifyRequest("order_test", "pay_1", sig)
	tampered.BookingDetails.Travellers = 1
	_, err = env.svc.VerifyPayment(ctx, owner, tampered)
	assert.True(t, domain.IsValidation(err), "details must match the order")
}

func TestRecordPaymentFailure(t *testing.T) {
	env := newPaymentEnv(t)
	env.addPackage(t, "goa", 2000)
	actor := env.addUser(t, "u1", models.RoleUser)
	ctx := context.Background()

	_, err := env.svc.CreatePaymentOrder(ctx, actor, models.PaymentOrderRequest{PackageID: "goa", Travellers: 3})
	require.NoError(t, err)

	res, err := env.svc.RecordPaymentFailure(ctx, actor, models.PaymentFailedRequest{
		OrderID:        "order_test",
		BookingDetails: validInput("goa"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Booking saved with failed payment status", res.Message)

	b, err := env.bookings.GetBookingByID(ctx, res.BookingID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, b.PaymentStatus)
	assert.Equal(t, "order_test", b.RazorpayOrderID)
	assert.Empty(t, b.RazorpayPaymentID)
	assert.Equal(t, 6000.0, b.TotalAmount)
	assert.False(t, env.mr.Exists("payment_hold:order_test"))

	_, err = env.svc.RecordPaymentFailure(ctx, actor, models.PaymentFailedRequest{
		BookingDetails: models.BookingRequest{PackageID: "missing"},
	})
	assert.True(t, domain.IsNotFound(err))

	_, err = env.svc.RecordPaymentFailure(ctx, actor, models.PaymentFailedRequest{
		OrderID:        "order_other",
		BookingDetails: validInput("goa"),
	})
	assert.True(t, domain.IsValidation(err), "orders the gateway never issued are rejected")
}

func TestVerifyPayment_WithoutHoldChecksOrderNotes(t *testing.T) {
	ctx := context.Background()
	sig := payment.Signature(keySecret, "order_test", "pay_1")

	open := func(t *testing.T, expired bool) (*paymentEnv, models.Identity) {
		env := newPaymentEnv(t)
		env.addPackage(t, "goa", 2000)
		env.addPackage(t, "cheap", 10)
		actor := env.addUser(t, "u1", models.RoleUser)
		if !expired {
			env.svc.Holds = nil
		}

		_, err := env.svc.CreatePaymentOrder(ctx, actor, models.PaymentOrderRequest{PackageID: "cheap", Travellers: 1})
		require.NoError(t, err)
		if expired {
			env.mr.FastForward(31 * time.Minute)
		}
		return env, actor
	}

	for _, expired := range []bool{false, true} {
		name := "no hold store"
		if expired {
			name = "hold expired"
		}
		t.Run(name, func(t *testing.T) {
			t.Run("other package", func(t *testing.T) {
				env, actor := open(t, expired)
				req := verifyRequest("order_test", "pay_1", sig)
				req.BookingDetails.Travellers = 1

				_, err := env.svc.VerifyPayment(ctx, actor, req)
				require.Error(t, err)
				assert.True(t, domain.IsValidation(err))
				assert.Equal(t, "Booking details do not match the payment order", err.Error())
				assert.EqualValues(t, 1, env.fetches.Load())

				all, err := env.bookings.ListBookings(ctx)
				require.NoError(t, err)
				assert.Empty(t, all)
			})

			t.Run("more travellers", func(t *testing.T) {
				env, actor := open(t, expired)
				req := verifyRequest("order_test", "pay_1", sig)
				req.BookingDetails.PackageID = "cheap"
				req.BookingDetails.Travellers = 5

				_, err := env.svc.VerifyPayment(ctx, actor, req)
				assert.True(t, domain.IsValidation(err))
			})

			t.Run("another user", func(t *testing.T) {
				env, _ := open(t, expired)
				thief := env.addUser(t, "thief", models.RoleUser)
				req := verifyRequest("order_test", "pay_1", sig)
				req.BookingDetails.PackageID = "cheap"
				req.BookingDetails.Travellers = 1

				_, err := env.svc.VerifyPayment(ctx, thief, req)
				assert.True(t, domain.IsForbidden(err))
			})

			t.Run("matching details", func(t *testing.T) {
				env, actor := open(t, expired)
				req := verifyRequest("order_test", "pay_1", sig)
				req.BookingDetails.PackageID = "cheap"
				req.BookingDetails.Travellers = 1

				res, err := env.svc.VerifyPayment(ctx, actor, req)
				require.NoError(t, err)

				b, err := env.bookings.GetBookingByID(ctx, res.BookingID)
				require.NoError(t, err)
				assert.Equal(t, models.PaymentCompleted, b.PaymentStatus)
				assert.Equal(t, 10.0, b.TotalAmount)
			})
		})
	}
}

func TestVerifyPayment_LiveHoldSkipsOrderLookup(t *testing.T) {
	env := newPaymentEnv(t)
	env.addPackage(t, "goa", 2000)
	actor := env.addUser(t, "u1", models.RoleUser)
	ctx := context.Background()

	_, err := env.svc.CreatePaymentOrder(ctx, actor, models.PaymentOrderRequest{PackageID: "goa", Travellers: 3})
	require.NoError(t, err)

	_, err = env.svc.VerifyPayment(ctx, actor, verifyRequest("order_test", "pay_1", payment.Signature(keySecret, "order_test", "pay_1")))
	require.NoError(t, err)
	assert.Zero(t, env.fetches.Load())
}
