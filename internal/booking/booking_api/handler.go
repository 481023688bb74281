package booking_api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/auth"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/booking"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/booking/voucher"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/utils"
)

type Handler struct {
	Service  *booking.Service
	Vouchers *voucher.Generator
	Logger   *logger.Logger
}

func NewHandler(service *booking.Service, vouchers *voucher.Generator, log *logger.Logger) *Handler {
	if vouchers == nil {
		vouchers = voucher.NewGenerator()
	}
	return &Handler{Service: service, Vouchers: vouchers, Logger: log}
}

// RegisterRoutes mounts /bookings and /payment. Every route needs
// authenticate; listing all bookings also needs requireAdmin.
func (h *Handler) RegisterRoutes(r chi.Router, authenticate, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/bookings", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/", h.CreateBooking)
		r.Get("/mine", h.ListMine)
		r.Get("/{id}/voucher", h.Voucher)
		r.With(requireAdmin).Get("/", h.ListAll)
	})

	r.Route("/payment", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/create-order", h.CreateOrder)
		r.Post("/verify-payment", h.VerifyPayment)
		r.Post("/payment-failed", h.PaymentFailed)
	})
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.MustIdentity(r.Context())
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	var req models.BookingRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	b, err := h.Service.CreateBooking(r.Context(), identity, req)
	if err != nil {
		h.Logger.Debug("API", fmt.Sprintf("CreateBooking rejected for user %s: %v", identity.ID, err))
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, b)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.MustIdentity(r.Context())
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	bookings, err := h.Service.ListMine(r.Context(), identity.ID)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, bookings)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.ListAll(r.Context())
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, bookings)
}

// Voucher serves the booking's QR code as a PNG.
func (h *Handler) Voucher(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.MustIdentity(r.Context())
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	b, err := h.Service.GetForActor(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	img, err := h.Vouchers.PNG(*b)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Voucher: failed to render QR for booking %s: %v", b.ID, err))
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to generate voucher")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=booking-%s.png", b.ID))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Voucher: failed to write response: %v", err))
	}
}
