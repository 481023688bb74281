package app

import (
	"context"
	"fmt"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/analytics"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/auth"
	authdb "github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/auth/db"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/booking"
	bookingdb "github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/booking/db"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/catalog"
	catalogdb "github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/catalog/db"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/config"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/database"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/database/migrations"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
)

type UserStore interface {
	auth.UserStore
	booking.UserReader
}

type PackageStore interface {
	catalog.PackageStore
	booking.PackageReader
	analytics.PackageCounter
}

type BookingStore interface {
	booking.BookingStore
	analytics.BookingAggregator
}

// Stores is one backend's implementation of every persistence interface.
type Stores struct {
	Users    UserStore
	Packages PackageStore
	Bookings BookingStore

	close func() error
}

func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStores connects to the backend named by cfg.Driver and prepares its
// schema: embedded migrations for postgres when AutoMigrate is set, model
// tables for sqlite and indexes for mongo.
func OpenStores(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverPostgres, config.DriverSQLite:
		bunDB, err := database.OpenBun(ctx, cfg, log)
		if err != nil {
			return nil, err
		}

		if cfg.Driver == config.DriverSQLite {
			if err := database.CreateSchema(ctx, bunDB); err != nil {
				bunDB.Close()
				return nil, err
			}
			log.LogDatabase("SCHEMA", "all", "SQLite schema ready")
		} else if cfg.AutoMigrate {
			if err := Migrate(cfg.DSN, log); err != nil {
				bunDB.Close()
				return nil, err
			}
		}

		return &Stores{
			Users:    &authdb.DB{Bun: bunDB},
			Packages: &catalogdb.DB{Bun: bunDB},
			Bookings: &bookingdb.DB{Bun: bunDB},
			close:    bunDB.Close,
		}, nil

	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI, log)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := database.EnsureMongoIndexes(ctx, db); err != nil {
			client.Disconnect(context.Background())
			return nil, err
		}
		log.LogDatabase("INDEXES", cfg.MongoDatabase, "MongoDB indexes ready")

		return &Stores{
			Users:    authdb.NewMongoDB(db),
			Packages: catalogdb.NewMongoDB(db),
			Bookings: bookingdb.NewMongoDB(db),
			close: func() error {
				return client.Disconnect(context.Background())
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// Migrate applies every pending postgres migration.
func Migrate(dsn string, log *logger.Logger) error {
	runner := migrations.NewRunner(dsn, log)
	defer runner.Close()

	log.Info("MIGRATE", "Running database migrations")
	if err := runner.MigrateUp(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("MIGRATE", "Database migrations completed")
	return nil
}
