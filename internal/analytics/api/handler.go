package analytics_api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/analytics"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/utils"
)

// Handler serves the admin dashboard endpoints.
type Handler struct {
	Service *analytics.Service
	Logger  *logger.Logger
}

func NewHandler(service *analytics.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

// RegisterRoutes mounts /admin behind authenticate and requireAdmin.
func (h *Handler) RegisterRoutes(r chi.Router, authenticate, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticate, requireAdmin)
		r.Get("/stats", h.GetStats)
	})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, stats)
}
