package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/database"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/domain"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
)

// MongoDB is the document-store user store. Email uniqueness comes from the
// unique index created by database.EnsureMongoIndexes.
type MongoDB struct {
	Users *mongo.Collection
}

func NewMongoDB(db *mongo.Database) *MongoDB {
	return &MongoDB{Users: db.Collection(database.UsersCollection)}
}

func (m *MongoDB) CreateUser(ctx context.Context, user *models.User) error {
	_, err := m.Users.InsertOne(ctx, user)
	return database.TranslateError(err)
}

func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := m.Users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, database.TranslateError(err)
	}
	return &user, nil
}

func (m *MongoDB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := m.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, database.TranslateError(err)
	}
	return &user, nil
}

func (m *MongoDB) GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	cur, err := m.Users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, database.TranslateError(err)
	}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (m *MongoDB) UpdateUserRole(ctx context.Context, id string, role models.Role) error {
	res, err := m.Users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return database.TranslateError(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}
