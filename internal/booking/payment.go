package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/domain"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/payment"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/utils"
)

var errPaymentsDisabled = domain.InternalError{Msg: "Payments are not configured"}

// CreatePaymentOrder opens a gateway order for the server-computed price of
// travellers on a package and remembers it as a hold for actor.
func (s *Service) CreatePaymentOrder(ctx context.Context, actor models.Identity, req models.PaymentOrderRequest) (*models.PaymentOrderResponse, error) {
	if s.Gateway == nil {
		return nil, errPaymentsDisabled
	}
	if strings.TrimSpace(req.PackageID) == "" || req.Travellers < 1 {
		return nil, domain.ValidationError{Msg: "Invalid booking details"}
	}

	pkg, err := s.resolvePackage(ctx, req.PackageID)
	if err != nil {
		return nil, err
	}

	amount := pkg.Price * float64(req.Travellers)
	now := s.now()
	order, err := s.Gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:   amount,
		Currency: s.Currency,
		Receipt:  utils.GenerateReceipt(now),
		Notes: map[string]string{
			"packageId":    pkg.ID,
			"packageTitle": pkg.Title,
			"userId":       actor.ID,
			"travellers":   strconv.Itoa(req.Travellers),
		},
	})
	if err != nil {
		return nil, domain.InternalError{Msg: "Failed to create payment order", Err: err}
	}

	if s.Holds != nil {
		hold := models.PaymentHold{
			OrderID:    order.ID,
			UserID:     actor.ID,
			PackageID:  pkg.ID,
			Travellers: req.Travellers,
			Amount:     amount,
			CreatedAt:  now.UTC(),
		}
		if err := s.Holds.SaveHold(ctx, hold); err != nil {
			s.Logger.Warn("PAYMENT", fmt.Sprintf("Failed to record hold for order %s: %v", order.ID, err))
		}
	}

	s.Logger.LogPayment("ORDER_OPENED", order.ID, fmt.Sprintf("user=%s package=%s amount=%.2f", actor.ID, pkg.ID, amount))
	return &models.PaymentOrderResponse{
		Success:      true,
		OrderID:      order.ID,
		Amount:       amount,
		AmountMinor:  payment.ToMinorUnits(amount),
		Currency:     s.Currency,
		KeyID:        s.Gateway.KeyID(),
		PackageTitle: pkg.Title,
		Provider:     s.Gateway.Name(),
		ClientSecret: order.ClientSecret,
	}, nil
}

// VerifyPayment checks the gateway proof and only then stores a completed
// booking. Verifying the same order twice returns the first booking.
func (s *Service) VerifyPayment(ctx context.Context, actor models.Identity, req models.VerifyPaymentRequest) (*models.PaymentResultResponse, error) {
	if s.Gateway == nil {
		return nil, errPaymentsDisabled
	}
	if req.OrderID == "" || req.PaymentID == "" {
		return nil, domain.ValidationError{Msg: "Payment verification failed"}
	}

	err := s.Gateway.VerifyPayment(ctx, req.OrderID, req.PaymentID, req.Signature)
	switch {
	case errors.Is(err, payment.ErrSignatureMismatch), errors.Is(err, payment.ErrPaymentNotCompleted):
		return nil, domain.ValidationError{Msg: "Payment verification failed", Err: err}
	case err != nil:
		return nil, domain.InternalError{Msg: "Failed to verify payment", Err: err}
	}

	if err := s.checkHold(ctx, actor, req.OrderID, req.BookingDetails); err != nil {
		return nil, err
	}

	existing, err := s.DB.GetCompletedBookingByOrderID(ctx, req.OrderID)
	switch {
	case err == nil:
		if existing.UserID != actor.ID {
			return nil, domain.ForbiddenError{Msg: "Forbidden"}
		}
		return &models.PaymentResultResponse{Success: true, Message: "Booking confirmed successfully!", BookingID: existing.ID}, nil
	case !errors.Is(err, domain.ErrRecordNotFound):
		return nil, domain.InternalError{Msg: "Failed to verify payment", Err: err}
	}

	b, err := s.CreateBooking(ctx, actor, req.BookingDetails,
		WithPayment(models.PaymentCompleted, req.OrderID, req.PaymentID, req.Signature))
	if err != nil {
		return nil, err
	}

	s.releaseHold(ctx, actor, req.OrderID)
	s.Logger.LogPayment("VERIFIED", req.OrderID, fmt.Sprintf("booking=%s payment=%s", b.ID, req.PaymentID))
	s.publish(ctx, models.EventBookingPaymentCompleted, *b)

	return &models.PaymentResultResponse{Success: true, Message: "Booking confirmed successfully!", BookingID: b.ID}, nil
}

// RecordPaymentFailure stores a failed booking for an abandoned or declined
// gateway order.
func (s *Service) RecordPaymentFailure(ctx context.Context, actor models.Identity, req models.PaymentFailedRequest) (*models.PaymentResultResponse, error) {
	if req.OrderID != "" {
		if err := s.checkHold(ctx, actor, req.OrderID, req.BookingDetails); err != nil {
			return nil, err
		}
	}

	b, err := s.CreateBooking(ctx, actor, req.BookingDetails,
		WithPayment(models.PaymentFailed, req.OrderID, "", ""))
	if err != nil {
		return nil, err
	}

	if req.OrderID != "" {
		s.releaseHold(ctx, actor, req.OrderID)
	}
	s.Logger.LogPayment("FAILED", req.OrderID, fmt.Sprintf("booking=%s user=%s", b.ID, actor.ID))
	s.publish(ctx, models.EventBookingPaymentFailed, *b)

	return &models.PaymentResultResponse{Success: true, Message: "Booking saved with failed payment status", BookingID: b.ID}, nil
}

// checkHold rejects an order opened by someone else or for different
// booking details. Without a live hold the notes stored on the gateway
// order are checked instead.
func (s *Service) checkHold(ctx context.Context, actor models.Identity, orderID string, details models.BookingRequest) error {
	var hold *models.PaymentHold
	if s.Holds != nil {
		var err error
		hold, err = s.Holds.GetHold(ctx, orderID)
		if err != nil {
			return domain.InternalError{Msg: "Failed to verify payment", Err: err}
		}
	}
	if hold == nil {
		var err error
		hold, err = s.orderHold(ctx, orderID)
		if err != nil || hold == nil {
			return err
		}
	}

	if hold.UserID != actor.ID {
		s.Logger.LogSecurity("PAYMENT_HOLD_MISMATCH", fmt.Sprintf("order=%s owner=%s caller=%s", orderID, hold.UserID, actor.ID))
		return domain.ForbiddenError{Msg: "Forbidden"}
	}
	if hold.PackageID != strings.TrimSpace(details.PackageID) || hold.Travellers != details.Travellers {
		return domain.ValidationError{Msg: "Booking details do not match the payment order"}
	}
	return nil
}

// orderHold rebuilds a hold from the notes CreatePaymentOrder attached to
// the gateway order. It returns nil when no gateway is configured.
func (s *Service) orderHold(ctx context.Context, orderID string) (*models.PaymentHold, error) {
	if s.Gateway == nil {
		return nil, nil
	}

	order, err := s.Gateway.FetchOrder(ctx, orderID)
	switch {
	case errors.Is(err, payment.ErrOrderNotFound):
		return nil, domain.ValidationError{Msg: "Payment verification failed", Err: err}
	case err != nil:
		return nil, domain.InternalError{Msg: "Failed to verify payment", Err: err}
	}

	s.Logger.LogPayment("HOLD_MISSING", orderID, "checking booking details against the order notes")
	travellers, _ := strconv.Atoi(order.Notes["travellers"])
	return &models.PaymentHold{
		OrderID:    order.ID,
		UserID:     order.Notes["userId"],
		PackageID:  order.Notes["packageId"],
		Travellers: travellers,
	}, nil
}

func (s *Service) releaseHold(ctx context.Context, actor models.Identity, orderID string) {
	if s.Holds == nil {
		return
	}
	if err := s.Holds.ReleaseHold(ctx, orderID, actor.ID); err != nil {
		s.Logger.Warn("PAYMENT", fmt.Sprintf("Failed to release hold for order %s: %v", orderID, err))
	}
}
