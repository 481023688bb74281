package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Package is a travel package offered in the catalog.
type Package struct {
	bun.BaseModel `bun:"table:packages" bson:"-"`

	ID          string    `bun:"id,pk" bson:"_id" json:"id"`
	Title       string    `bun:"title,notnull" bson:"title" json:"title"`
	Description string    `bun:"description,notnull" bson:"description" json:"description"`
	Location    string    `bun:"location,notnull" bson:"location" json:"location"`
	Days        int       `bun:"days,notnull" bson:"days" json:"days"`
	Price       float64   `bun:"price,notnull" bson:"price" json:"price"`
	ImageURL    string    `bun:"image_url" bson:"image_url" json:"imageUrl"`
	CreatedAt   time.Time `bun:"created_at,notnull" bson:"created_at" json:"createdAt"`
}

type PackageRequest struct {
	Title       string   `json:"title" validate:"min=3"`
	Description string   `json:"description" validate:"min=10"`
	Location    string   `json:"location" validate:"min=2"`
	Days        *int     `json:"days" validate:"required,gt=0"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url"`
}

// PackageFilter narrows a catalog listing. Zero values mean no filter.
type PackageFilter struct {
	Title    string
	Location string
	MaxPrice *float64
}
