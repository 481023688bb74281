package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/domain"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/payment"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/utils"
)

type BookingStore interface {
	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBookingByID(ctx context.Context, id string) (*models.Booking, error)
	ListBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	// GetCompletedBookingByOrderID finds the paid booking for a gateway order.
	GetCompletedBookingByOrderID(ctx context.Context, orderID string) (*models.Booking, error)
}

type PackageReader interface {
	GetPackageByID(ctx context.Context, id string) (*models.Package, error)
	GetPackagesByIDs(ctx context.Context, ids []string) ([]models.Package, error)
}

type UserReader interface {
	GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
}

// HoldStore remembers which user opened a gateway order.
type HoldStore interface {
	SaveHold(ctx context.Context, hold models.PaymentHold) error
	GetHold(ctx context.Context, orderID string) (*models.PaymentHold, error)
	ReleaseHold(ctx context.Context, orderID, userID string) error
}

type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event models.BookingEvent) error
}

// Service owns every write to bookings. Holds, Events and Gateway are
// optional; a nil Gateway disables the payment operations.
type Service struct {
	DB       BookingStore
	Packages PackageReader
	Users    UserReader
	Holds    HoldStore
	Events   EventPublisher
	Gateway  payment.Gateway
	Currency string
	Location *time.Location
	Logger   *logger.Logger
	Now      func() time.Time
}

func NewService(db BookingStore, packages PackageReader, users UserReader, log *logger.Logger) *Service {
	return &Service{
		DB:       db,
		Packages: packages,
		Users:    users,
		Currency: "INR",
		Location: time.Local,
		Logger:   log,
		Now:      time.Now,
	}
}

type createOptions struct {
	status    models.PaymentStatus
	orderID   string
	paymentID string
	signature string
}

type CreateOption func(*createOptions)

// WithPayment records the gateway outcome on the new booking.
func WithPayment(status models.PaymentStatus, orderID, paymentID, signature string) CreateOption {
	return func(o *createOptions) {
		o.status = status
		o.orderID = orderID
		o.paymentID = paymentID
		o.signature = signature
	}
}

// CreateBooking validates input, prices it from the stored package and
// persists it for actor. Checks run in a fixed order and the first failure
// is returned.
func (s *Service) CreateBooking(ctx context.Context, actor models.Identity, input models.BookingRequest, opts ...CreateOption) (*models.Booking, error) {
	o := createOptions{status: models.PaymentPending}
	for _, opt := range opts {
		opt(&o)
	}

	pkg, err := s.resolvePackage(ctx, input.PackageID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)

	if len([]rune(name)) < 2 {
		return nil, domain.NewFieldError("name", "Name must be at least 2 characters")
	}
	if !utils.IsEmail(email) {
		return nil, domain.NewFieldError("email", "Invalid email")
	}
	if n := countDigits(phone); n < 10 || n > 15 {
		return nil, domain.NewFieldError("phone", "Phone must have 10 to 15 digits")
	}
	if input.Travellers < 1 {
		return nil, domain.NewFieldError("travellers", "At least one traveller is required")
	}

	startDate, err := utils.ParseCalendarDate(input.StartDate, s.location())
	if err != nil {
		return nil, domain.NewFieldError("startDate", "Invalid start date")
	}
	now := s.now()
	if startDate.Before(utils.DateOnly(now, s.location())) {
		return nil, domain.NewFieldError("startDate", "Start date must be today or later")
	}

	b := &models.Booking{
		ID:                utils.GenerateID(),
		PackageID:         pkg.ID,
		PackageTitle:      pkg.Title,
		UserID:            actor.ID,
		UserEmail:         strings.ToLower(email),
		Name:              name,
		Phone:             phone,
		Travellers:        input.Travellers,
		StartDate:         startDate,
		TotalAmount:       pkg.Price * float64(input.Travellers),
		PaymentStatus:     o.status,
		RazorpayOrderID:   o.orderID,
		RazorpayPaymentID: o.paymentID,
		RazorpaySignature: o.signature,
		CreatedAt:         now.UTC(),
	}

	if err := s.DB.CreateBooking(ctx, b); err != nil {
		return nil, domain.InternalError{Msg: "Failed to save booking", Err: err}
	}

	s.Logger.LogBooking("CREATED", b.ID, fmt.Sprintf("user=%s package=%s travellers=%d total=%.2f status=%s",
		b.UserID, b.PackageID, b.Travellers, b.TotalAmount, b.PaymentStatus))
	s.publish(ctx, models.EventBookingCreated, *b)
	return b, nil
}

// ListMine returns only actorID's bookings, newest first.
func (s *Service) ListMine(ctx context.Context, actorID string) ([]models.Booking, error) {
	bookings, err := s.DB.ListBookingsByUser(ctx, actorID)
	if err != nil {
		return nil, domain.InternalError{Msg: "Failed to load bookings", Err: err}
	}
	return bookings, nil
}

// ListAll returns every booking joined with its current package and owner.
func (s *Service) ListAll(ctx context.Context) ([]models.JoinedBooking, error) {
	bookings, err := s.DB.ListBookings(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "Failed to load bookings", Err: err}
	}

	pkgIDs := make([]string, 0, len(bookings))
	userIDs := make([]string, 0, len(bookings))
	seenPkg := map[string]bool{}
	seenUser := map[string]bool{}
	for _, b := range bookings {
		if !seenPkg[b.PackageID] {
			seenPkg[b.PackageID] = true
			pkgIDs = append(pkgIDs, b.PackageID)
		}
		if !seenUser[b.UserID] {
			seenUser[b.UserID] = true
			userIDs = append(userIDs, b.UserID)
		}
	}

	pkgs, err := s.Packages.GetPackagesByIDs(ctx, pkgIDs)
	if err != nil {
		return nil, domain.InternalError{Msg: "Failed to load bookings", Err: err}
	}
	users, err := s.Users.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, domain.InternalError{Msg: "Failed to load bookings", Err: err}
	}

	pkgByID := make(map[string]*models.Package, len(pkgs))
	for i := range pkgs {
		pkgByID[pkgs[i].ID] = &pkgs[i]
	}
	userByID := make(map[string]*models.PublicUser, len(users))
	for i := range users {
		pub := users[i].Public()
		userByID[users[i].ID] = &pub
	}

	joined := make([]models.JoinedBooking, 0, len(bookings))
	for _, b := range bookings {
		joined = append(joined, models.JoinedBooking{
			Booking: b,
			Package: pkgByID[b.PackageID],
			User:    userByID[b.UserID],
		})
	}
	return joined, nil
}

// GetForActor returns a booking the actor owns, or any booking for admins.
func (s *Service) GetForActor(ctx context.Context, actor models.Identity, bookingID string) (*models.Booking, error) {
	b, err := s.DB.GetBookingByID(ctx, bookingID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "Booking", Err: err}
	}
	if err != nil {
		return nil, domain.InternalError{Msg: "Failed to load booking", Err: err}
	}
	if b.UserID != actor.ID && !actor.IsAdmin() {
		s.Logger.LogSecurity("BOOKING_ACCESS_DENIED", fmt.Sprintf("user=%s booking=%s", actor.ID, bookingID))
		return nil, domain.ForbiddenError{Msg: "Forbidden"}
	}
	return b, nil
}

func (s *Service) resolvePackage(ctx context.Context, packageID string) (*models.Package, error) {
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return nil, domain.NotFoundError{Resource: "Package"}
	}
	pkg, err := s.Packages.GetPackageByID(ctx, packageID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "Package", Err: err}
	}
	if err != nil {
		return nil, domain.InternalError{Msg: "Failed to load package", Err: err}
	}
	return pkg, nil
}

// publish is best effort; a failed publish never fails the booking.
func (s *Service) publish(ctx context.Context, eventType string, b models.Booking) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishBookingEvent(ctx, models.NewBookingEvent(eventType, b, s.now())); err != nil {
		s.Logger.Warn("BOOKING", fmt.Sprintf("Failed to publish %s for %s: %v", eventType, b.ID, err))
	}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Service) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
