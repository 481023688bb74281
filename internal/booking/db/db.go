package db

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/database"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
)

// DB is the bun-backed booking store.
type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateBooking(ctx context.Context, b *models.Booking) error {
	_, err := d.Bun.NewInsert().
		Model(b).
		Exec(ctx)
	return database.TranslateError(err)
}

func (d *DB) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := d.Bun.NewSelect().
		Model(&b).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &b, nil
}

func (d *DB) GetCompletedBookingByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	var b models.Booking
	err := d.Bun.NewSelect().
		Model(&b).
		Where("razorpay_order_id = ?", orderID).
		Where("payment_status = ?", models.PaymentCompleted).
		OrderExpr("created_at ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &b, nil
}

func (d *DB) ListBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := d.Bun.NewSelect().
		Model(&bookings).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (d *DB) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := d.Bun.NewSelect().
		Model(&bookings).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

type statusRow struct {
	PaymentStatus models.PaymentStatus `bun:"payment_status"`
	Count         int                  `bun:"count"`
	Revenue       float64              `bun:"revenue"`
}

// BookingStats aggregates bookings per payment status.
func (d *DB) BookingStats(ctx context.Context) (models.BookingStats, error) {
	var rows []statusRow
	err := d.Bun.NewSelect().
		Model((*models.Booking)(nil)).
		ColumnExpr("payment_status").
		ColumnExpr("COUNT(*) AS count").
		ColumnExpr("COALESCE(SUM(total_amount), 0) AS revenue").
		Group("payment_status").
		Scan(ctx, &rows)
	if err != nil {
		return models.BookingStats{}, err
	}
	return foldStats(rows), nil
}

func foldStats(rows []statusRow) models.BookingStats {
	var stats models.BookingStats
	for _, r := range rows {
		stats.TotalBookings += r.Count
		switch r.PaymentStatus {
		case models.PaymentPending:
			stats.PendingBookings = r.Count
		case models.PaymentCompleted:
			stats.CompletedBookings = r.Count
			stats.TotalRevenue = r.Revenue
		case models.PaymentFailed:
			stats.FailedBookings = r.Count
		}
	}
	return stats
}
