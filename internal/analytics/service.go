package analytics

import (
	"context"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/domain"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
)

type PackageCounter interface {
	CountPackages(ctx context.Context) (int, error)
}

// BookingAggregator sums bookings per payment status. Revenue counts
// completed bookings only.
type BookingAggregator interface {
	BookingStats(ctx context.Context) (models.BookingStats, error)
}

// Service builds the admin dashboard figures.
type Service struct {
	packages PackageCounter
	bookings BookingAggregator
	logger   *logger.Logger
}

func NewService(packages PackageCounter, bookings BookingAggregator, log *logger.Logger) *Service {
	return &Service{packages: packages, bookings: bookings, logger: log}
}

func (s *Service) Stats(ctx context.Context) (*models.BookingStats, error) {
	stats, err := s.bookings.BookingStats(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "Failed to load stats", Err: err}
	}

	total, err := s.packages.CountPackages(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "Failed to load stats", Err: err}
	}
	stats.TotalPackages = total

	s.logger.Debug("ANALYTICS", "Dashboard stats computed")
	return &stats, nil
}
