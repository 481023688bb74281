package catalog_api

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/catalog"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/domain"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/utils"
)

type Handler struct {
	Service *catalog.Service
	Logger  *logger.Logger
}

func NewHandler(service *catalog.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

// RegisterRoutes mounts /packages. Reads are public, writes need authenticate
// followed by requireAdmin.
func (h *Handler) RegisterRoutes(r chi.Router, authenticate, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/packages", func(r chi.Router) {
		r.Get("/", h.ListPackages)
		r.Get("/{id}", h.GetPackage)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, requireAdmin)
			r.Post("/", h.CreatePackage)
			r.Put("/{id}", h.UpdatePackage)
			r.Delete("/{id}", h.DeletePackage)
		})
	})
}

func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	pkgs, err := h.Service.List(r.Context(), filter)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, pkgs)
}

func (h *Handler) GetPackage(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, pkg)
}

func (h *Handler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req models.PackageRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	pkg, err := h.Service.Create(r.Context(), req)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, pkg)
}

func (h *Handler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	var req models.PackageRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}

	pkg, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, pkg)
}

func (h *Handler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Deleted")
}

// ParseFilter reads title, location and maxPrice from the query string.
func ParseFilter(r *http.Request) (models.PackageFilter, error) {
	q := r.URL.Query()
	filter := models.PackageFilter{
		Title:    q.Get("title"),
		Location: q.Get("location"),
	}

	if raw := strings.TrimSpace(q.Get("maxPrice")); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(maxPrice) {
			return filter, domain.NewFieldError("maxPrice", "maxPrice must be a number")
		}
		filter.MaxPrice = &maxPrice
	}
	return filter, nil
}
