// Package app builds the service's dependency graph from configuration.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/analytics"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/auth"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/booking"
	bookingredis "github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/booking/redis"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/booking/voucher"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/catalog"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/config"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/kafka"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/payment"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/server"
)

// App is the wired service. Close releases every connection it opened.
type App struct {
	Handler  http.Handler
	Auth     *auth.Service
	Bookings *booking.Service
	Stores   *Stores

	logger  *logger.Logger
	closers []func() error
}

// New connects the stores and optional Redis and Kafka, then builds the
// services and router. Redis and Kafka are skipped when not configured.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{logger: log}

	stores, err := OpenStores(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("open stores: %w", err)
	}
	a.Stores = stores
	a.closers = append(a.closers, stores.Close)

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	hasher := auth.BcryptHasher{Cost: bcrypt.DefaultCost}

	var (
		revoker auth.Revoker
		checker auth.RevocationChecker
		holds   booking.HoldStore
	)
	if cfg.Redis.Addr != "" {
		client, err := auth.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)

		denylist := auth.NewRedisDenylist(client)
		revoker, checker = denylist, denylist
		holds = bookingredis.NewHolds(client, cfg.Redis.HoldTTL, log)
	} else {
		log.Warn("REDIS", "REDIS_ADDR not set; logout revocation and payment holds are disabled")
	}

	a.Auth = auth.NewService(stores.Users, hasher, tokens, revoker, log)

	gateway, err := payment.NewGateway(cfg.Payment, &http.Client{Timeout: 10 * time.Second}, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	bookings := booking.NewService(stores.Bookings, stores.Packages, stores.Users, log)
	bookings.Gateway = gateway
	bookings.Currency = cfg.Payment.Currency
	bookings.Holds = holds
	if cfg.Kafka.Enabled {
		bookings.Events = a.startKafka(cfg.Kafka, log)
	}
	a.Bookings = bookings

	a.Handler = server.NewRouter(cfg.Server, server.Services{
		Auth:      a.Auth,
		Tokens:    tokens,
		Revoked:   checker,
		Catalog:   catalog.NewService(stores.Packages, log),
		Bookings:  bookings,
		Vouchers:  voucher.NewGenerator(),
		Analytics: analytics.NewService(stores.Packages, stores.Bookings, log),
	}, log)

	return a, nil
}

func (a *App) startKafka(cfg config.KafkaConfig, log *logger.Logger) booking.EventPublisher {
	if err := kafka.EnsureTopicsExist(cfg.Brokers, []string{cfg.Topics.BookingEvents}, log); err != nil {
		log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
	}
	producer := kafka.NewProducer(cfg.Brokers, cfg.Topics.BookingEvents, log)
	a.closers = append(a.closers, producer.Close)
	log.Info("KAFKA", "Kafka producer initialized successfully")
	return producer
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Error("APP", fmt.Sprintf("Failed to release resource: %v", err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	a.closers = nil
	return firstErr
}
