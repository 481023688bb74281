package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/domain"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/utils"
)

type PackageStore interface {
	CreatePackage(ctx context.Context, pkg *models.Package) error
	GetPackageByID(ctx context.Context, id string) (*models.Package, error)
	UpdatePackage(ctx context.Context, pkg *models.Package) error
	DeletePackage(ctx context.Context, id string) error
	ListPackages(ctx context.Context, filter models.PackageFilter) ([]models.Package, error)
}

type Service struct {
	store  PackageStore
	logger *logger.Logger
	now    func() time.Time
}

func NewService(store PackageStore, log *logger.Logger) *Service {
	return &Service{store: store, logger: log, now: time.Now}
}

// List returns packages newest first, narrowed by filter.
func (s *Service) List(ctx context.Context, filter models.PackageFilter) ([]models.Package, error) {
	filter.Title = strings.TrimSpace(filter.Title)
	filter.Location = strings.TrimSpace(filter.Location)

	pkgs, err := s.store.ListPackages(ctx, filter)
	if err != nil {
		return nil, domain.InternalError{Msg: "Failed to load packages", Err: err}
	}
	return pkgs, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Package, error) {
	pkg, err := s.store.GetPackageByID(ctx, id)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "Package", Err: err}
	}
	if err != nil {
		return nil, domain.InternalError{Msg: "Failed to load package", Err: err}
	}
	return pkg, nil
}

func (s *Service) Create(ctx context.Context, req models.PackageRequest) (*models.Package, error) {
	req = normalize(req)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	pkg := &models.Package{
		ID:        utils.GenerateID(),
		CreatedAt: s.now().UTC(),
	}
	apply(pkg, req)

	if err := s.store.CreatePackage(ctx, pkg); err != nil {
		return nil, domain.InternalError{Msg: "Failed to create package", Err: err}
	}
	s.logger.Info("CATALOG", fmt.Sprintf("Package created: %s (%s)", pkg.ID, pkg.Title))
	return pkg, nil
}

// Update replaces the editable fields of an existing package. Bookings keep
// the title they were made under.
func (s *Service) Update(ctx context.Context, id string, req models.PackageRequest) (*models.Package, error) {
	req = normalize(req)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	pkg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(pkg, req)

	if err := s.store.UpdatePackage(ctx, pkg); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Resource: "Package", Err: err}
		}
		return nil, domain.InternalError{Msg: "Failed to update package", Err: err}
	}
	s.logger.Info("CATALOG", fmt.Sprintf("Package updated: %s", pkg.ID))
	return pkg, nil
}

// Delete removes a package. Deleting a missing package succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeletePackage(ctx, id); err != nil {
		return domain.InternalError{Msg: "Failed to delete package", Err: err}
	}
	s.logger.Info("CATALOG", fmt.Sprintf("Package deleted: %s", id))
	return nil
}

func normalize(req models.PackageRequest) models.PackageRequest {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Location = strings.TrimSpace(req.Location)
	req.ImageURL = strings.TrimSpace(req.ImageURL)
	return req
}

func apply(pkg *models.Package, req models.PackageRequest) {
	pkg.Title = req.Title
	pkg.Description = req.Description
	pkg.Location = req.Location
	pkg.Days = *req.Days
	pkg.Price = *req.Price
	pkg.ImageURL = req.ImageURL
}
