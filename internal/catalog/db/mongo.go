package db

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/database"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/domain"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
)

// MongoDB is the document-store package store.
type MongoDB struct {
	Packages *mongo.Collection
}

func NewMongoDB(db *mongo.Database) *MongoDB {
	return &MongoDB{Packages: db.Collection(database.PackagesCollection)}
}

func (m *MongoDB) CreatePackage(ctx context.Context, pkg *models.Package) error {
	_, err := m.Packages.InsertOne(ctx, pkg)
	return database.TranslateError(err)
}

func (m *MongoDB) GetPackageByID(ctx context.Context, id string) (*models.Package, error) {
	var pkg models.Package
	if err := m.Packages.FindOne(ctx, bson.M{"_id": id}).Decode(&pkg); err != nil {
		return nil, database.TranslateError(err)
	}
	return &pkg, nil
}

func (m *MongoDB) GetPackagesByIDs(ctx context.Context, ids []string) ([]models.Package, error) {
	pkgs := []models.Package{}
	if len(ids) == 0 {
		return pkgs, nil
	}
	cur, err := m.Packages.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	if err := cur.All(ctx, &pkgs); err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (m *MongoDB) UpdatePackage(ctx context.Context, pkg *models.Package) error {
	res, err := m.Packages.UpdateOne(ctx, bson.M{"_id": pkg.ID}, bson.M{"$set": bson.M{
		"title":       pkg.Title,
		"description": pkg.Description,
		"location":    pkg.Location,
		"days":        pkg.Days,
		"price":       pkg.Price,
		"image_url":   pkg.ImageURL,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (m *MongoDB) DeletePackage(ctx context.Context, id string) error {
	_, err := m.Packages.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (m *MongoDB) ListPackages(ctx context.Context, filter models.PackageFilter) ([]models.Package, error) {
	query := bson.M{}
	if filter.Title != "" {
		query["title"] = containsInsensitive(filter.Title)
	}
	if filter.Location != "" {
		query["location"] = containsInsensitive(filter.Location)
	}
	if filter.MaxPrice != nil {
		query["price"] = bson.M{"$lte": *filter.MaxPrice}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := m.Packages.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	pkgs := []models.Package{}
	if err := cur.All(ctx, &pkgs); err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (m *MongoDB) CountPackages(ctx context.Context) (int, error) {
	n, err := m.Packages.CountDocuments(ctx, bson.M{})
	return int(n), err
}

// User input is quoted so it is matched literally.
func containsInsensitive(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}
