package auth_api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/auth"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/utils"
)

type Handler struct {
	Service *auth.Service
	Logger  *logger.Logger
}

func NewHandler(service *auth.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

// RegisterRoutes mounts /auth. authenticate guards logout and me.
func (h *Handler) RegisterRoutes(r chi.Router, authenticate func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
		})
	})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	res, err := h.Service.Signup(r.Context(), req)
	if err != nil {
		h.Logger.Debug("API", fmt.Sprintf("Signup rejected: %v", err))
		utils.WriteError(w, h.Logger, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	res, err := h.Service.Login(r.Context(), req)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.MustIdentity(r.Context())
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	if err := h.Service.Logout(r.Context(), identity); err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	utils.WriteMessage(w, http.StatusOK, "Logged out")
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.MustIdentity(r.Context())
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	user, err := h.Service.Me(r.Context(), identity)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, user)
}
