package transport

import (
	"errors"
	"net/http"

	"qatrah-api/internal/middleware"
	"qatrah-api/internal/repository"
	"qatrah-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateServiceRequest represents the service creation payload. The slug is
// derived server-side and cannot be supplied.
type CreateServiceRequest struct {
	Title            localizedReq `json:"title"`
	ShortDescription localizedReq `json:"shortDescription"`
	FullContent      localizedReq `json:"fullContent"`
	Icon             string       `json:"icon"`
	Image            string       `json:"image"`
	Category         string       `json:"category" validate:"required,oneof=consulting quality maintenance operation"`
}

// UpdateServiceRequest represents the partial service update payload
type UpdateServiceRequest struct {
	Title            *localizedReq `json:"title"`
	ShortDescription *localizedReq `json:"shortDescription"`
	FullContent      *localizedReq `json:"fullContent"`
	Icon             *string       `json:"icon"`
	Image            *string       `json:"image"`
	Category         *string       `json:"category" validate:"omitempty,oneof=consulting quality maintenance operation"`
}

// ServiceHandler handles HTTP requests for lab services
type ServiceHandler struct {
	catalog service.ServiceCatalog
	logger  *zap.Logger
}

// NewServiceHandler creates a new ServiceHandler
func NewServiceHandler(catalog service.ServiceCatalog, logger *zap.Logger) *ServiceHandler {
	return &ServiceHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers the service routes
func (h *ServiceHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/services", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{slug}", h.GetBySlug)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List handles the public service listing
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list services", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to list services")
		return
	}

	middleware.RespondWithList(w, http.StatusOK, services, len(services))
}

// GetBySlug handles the public service lookup by slug
func (h *ServiceHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	svc, err := h.catalog.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Service not found")
			return
		}
		h.logger.Error("Failed to get service", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to get service")
		return
	}

	middleware.RespondWithData(w, http.StatusOK, svc)
}

// Create handles admin service creation
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Service validation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.ValidationMessage(err))
		return
	}

	svc, err := h.catalog.Create(r.Context(), service.ServiceInput{
		Title:            req.Title.toDomain(),
		ShortDescription: req.ShortDescription.toDomain(),
		FullContent:      req.FullContent.toDomain(),
		Icon:             req.Icon,
		Image:            req.Image,
		Category:         req.Category,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			middleware.RespondWithError(w, http.StatusBadRequest, "A service with this title already exists")
			return
		}
		h.logger.Error("Service creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to create service")
		return
	}

	middleware.RespondWithData(w, http.StatusCreated, svc)
}

// Update handles admin service updates with partial merge semantics
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid service ID")
		return
	}

	var req UpdateServiceRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.ValidationMessage(err))
		return
	}

	patch := service.ServicePatch{
		Icon:     req.Icon,
		Image:    req.Image,
		Category: req.Category,
	}
	if req.Title != nil {
		title := req.Title.toDomain()
		patch.Title = &title
	}
	if req.ShortDescription != nil {
		shortDescription := req.ShortDescription.toDomain()
		patch.ShortDescription = &shortDescription
	}
	if req.FullContent != nil {
		fullContent := req.FullContent.toDomain()
		patch.FullContent = &fullContent
	}

	svc, err := h.catalog.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Service not found")
			return
		}
		if errors.Is(err, repository.ErrDuplicateSlug) {
			middleware.RespondWithError(w, http.StatusBadRequest, "A service with this title already exists")
			return
		}
		h.logger.Error("Service update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to update service")
		return
	}

	middleware.RespondWithData(w, http.StatusOK, svc)
}

// Delete handles admin service deletion
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid service ID")
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Service not found")
			return
		}
		h.logger.Error("Service deletion failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	middleware.RespondWithData(w, http.StatusOK, struct{}{})
}
