package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	bun.BaseModel `bun:"table:users" bson:"-"`

	ID           string    `bun:"id,pk" bson:"_id" json:"id"`
	Name         string    `bun:"name,notnull" bson:"name" json:"name"`
	Email        string    `bun:"email,unique,notnull" bson:"email" json:"email"`
	PasswordHash string    `bun:"password_hash,notnull" bson:"password_hash" json:"-"`
	Role         Role      `bun:"role,notnull" bson:"role" json:"role"`
	CreatedAt    time.Time `bun:"created_at,notnull" bson:"created_at" json:"createdAt"`
}

// PublicUser is the projection of a User that may leave the service.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
