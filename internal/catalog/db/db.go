package db

import (
	"context"
	"strings"

	"github.com/uptrace/bun"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/database"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/domain"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
)

// DB is the bun-backed package store.
type DB struct {
	Bun *bun.DB
}

func (d *DB) CreatePackage(ctx context.Context, pkg *models.Package) error {
	_, err := d.Bun.NewInsert().
		Model(pkg).
		Exec(ctx)
	return database.TranslateError(err)
}

func (d *DB) GetPackageByID(ctx context.Context, id string) (*models.Package, error) {
	var pkg models.Package
	err := d.Bun.NewSelect().
		Model(&pkg).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &pkg, nil
}

func (d *DB) GetPackagesByIDs(ctx context.Context, ids []string) ([]models.Package, error) {
	pkgs := []models.Package{}
	if len(ids) == 0 {
		return pkgs, nil
	}
	err := d.Bun.NewSelect().
		Model(&pkgs).
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return pkgs, nil
}

func (d *DB) UpdatePackage(ctx context.Context, pkg *models.Package) error {
	res, err := d.Bun.NewUpdate().
		Model(pkg).
		Column("title", "description", "location", "days", "price", "image_url").
		Where("id = ?", pkg.ID).
		Exec(ctx)
	if err != nil {
		return database.TranslateError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (d *DB) DeletePackage(ctx context.Context, id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Package)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// ListPackages matches title and location as case-insensitive substrings.
func (d *DB) ListPackages(ctx context.Context, filter models.PackageFilter) ([]models.Package, error) {
	pkgs := []models.Package{}
	q := d.Bun.NewSelect().Model(&pkgs)

	if filter.Title != "" {
		q = q.Where(`lower(title) LIKE ? ESCAPE '!'`, likePattern(filter.Title))
	}
	if filter.Location != "" {
		q = q.Where(`lower(location) LIKE ? ESCAPE '!'`, likePattern(filter.Location))
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}

	if err := q.Order("created_at DESC").Scan(ctx); err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (d *DB) CountPackages(ctx context.Context) (int, error) {
	return d.Bun.NewSelect().
		Model((*models.Package)(nil)).
		Count(ctx)
}

var likeEscaper = strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
