// Package server assembles the HTTP router from the feature handlers.
package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/analytics"
	analytics_api "github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/analytics/api"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/auth"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/auth/auth_api"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/booking"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/booking/booking_api"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/booking/voucher"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/catalog"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/catalog/catalog_api"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/config"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/utils"
)

// Services holds everything the router needs. Revoked and Vouchers may be nil.
type Services struct {
	Auth      *auth.Service
	Tokens    *auth.TokenService
	Revoked   auth.RevocationChecker
	Catalog   *catalog.Service
	Bookings  *booking.Service
	Vouchers  *voucher.Generator
	Analytics *analytics.Service
}

type healthResponse struct {
	Status string `json:"status"`
}

func NewRouter(cfg config.ServerConfig, svc Services, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	})

	authenticate := auth.Authenticate(svc.Tokens, svc.Revoked, log)
	requireAdmin := auth.RequireRole(models.RoleAdmin, log)

	auth_api.NewHandler(svc.Auth, log).RegisterRoutes(r, authenticate)
	log.Info("ROUTER", "Auth routes registered under /auth")

	catalog_api.NewHandler(svc.Catalog, log).RegisterRoutes(r, authenticate, requireAdmin)
	log.Info("ROUTER", "Package routes registered under /packages")

	booking_api.NewHandler(svc.Bookings, svc.Vouchers, log).RegisterRoutes(r, authenticate, requireAdmin)
	log.Info("ROUTER", "Booking routes registered under /bookings and /payment")

	analytics_api.NewHandler(svc.Analytics, log).RegisterRoutes(r, authenticate, requireAdmin)
	log.Info("ROUTER", "Admin routes registered under /admin")

	return r
}

// AccessLog writes one API log line per request with its status and latency.
func AccessLog(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.LogAPI(r.Method, r.URL.Path, strconv.Itoa(status), fmt.Sprint(time.Since(start).Round(time.Microsecond)))
		})
	}
}
