package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/database"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
)

// MongoDB is the document-store booking store.
type MongoDB struct {
	Bookings *mongo.Collection
}

func NewMongoDB(db *mongo.Database) *MongoDB {
	return &MongoDB{Bookings: db.Collection(database.BookingsCollection)}
}

func (m *MongoDB) CreateBooking(ctx context.Context, b *models.Booking) error {
	_, err := m.Bookings.InsertOne(ctx, b)
	return database.TranslateError(err)
}

func (m *MongoDB) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	if err := m.Bookings.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, database.TranslateError(err)
	}
	return &b, nil
}

func (m *MongoDB) GetCompletedBookingByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	var b models.Booking
	filter := bson.M{"razorpay_order_id": orderID, "payment_status": models.PaymentCompleted}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if err := m.Bookings.FindOne(ctx, filter, opts).Decode(&b); err != nil {
		return nil, database.TranslateError(err)
	}
	return &b, nil
}

func (m *MongoDB) ListBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return m.find(ctx, bson.M{"user_id": userID})
}

func (m *MongoDB) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return m.find(ctx, bson.M{})
}

func (m *MongoDB) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := m.Bookings.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (m *MongoDB) BookingStats(ctx context.Context) (models.BookingStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$payment_status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total_amount"}}},
		}}},
	}
	cur, err := m.Bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return models.BookingStats{}, err
	}

	var groups []struct {
		Status  models.PaymentStatus `bson:"_id"`
		Count   int                  `bson:"count"`
		Revenue float64              `bson:"revenue"`
	}
	if err := cur.All(ctx, &groups); err != nil {
		return models.BookingStats{}, err
	}

	rows := make([]statusRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, statusRow{PaymentStatus: g.Status, Count: g.Count, Revenue: g.Revenue})
	}
	return foldStats(rows), nil
}
