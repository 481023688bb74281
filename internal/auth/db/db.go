package db

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/database"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/domain"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
)

// DB is the bun-backed user store.
type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateUser(ctx context.Context, user *models.User) error {
	_, err := d.Bun.NewInsert().
		Model(user).
		Exec(ctx)
	return database.TranslateError(err)
}

func (d *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := d.Bun.NewSelect().
		Model(&user).
		Where("email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &user, nil
}

func (d *DB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := d.Bun.NewSelect().
		Model(&user).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &user, nil
}

func (d *DB) GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	err := d.Bun.NewSelect().
		Model(&users).
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return users, nil
}

func (d *DB) UpdateUserRole(ctx context.Context, id string, role models.Role) error {
	res, err := d.Bun.NewUpdate().
		Model((*models.User)(nil)).
		Set("role = ?", role).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return database.TranslateError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}
