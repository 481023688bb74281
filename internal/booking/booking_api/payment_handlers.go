package booking_api

import (
	"fmt"
	"net/http"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/auth"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/utils"
)

// CreateOrder opens a gateway order for the checkout widget.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.MustIdentity(r.Context())
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	var req models.PaymentOrderRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	order, err := h.Service.CreatePaymentOrder(r.Context(), identity, req)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.MustIdentity(r.Context())
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	var req models.VerifyPaymentRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	res, err := h.Service.VerifyPayment(r.Context(), identity, req)
	if err != nil {
		h.Logger.Warn("API", fmt.Sprintf("VerifyPayment: order %s for user %s: %v", req.OrderID, identity.ID, err))
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) PaymentFailed(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.MustIdentity(r.Context())
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	var req models.PaymentFailedRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	res, err := h.Service.RecordPaymentFailure(r.Context(), identity, req)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}
