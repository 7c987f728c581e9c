package transport

import (
	"errors"
	"net/http"

	"qatrah-api/internal/domain"
	"qatrah-api/internal/middleware"
	"qatrah-api/internal/repository"
	"qatrah-api/internal/service"
	"qatrah-api/internal/upload"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UpdateLabPageRequest represents the partial lab page update payload.
// The page type comes from the URL and is immutable.
type UpdateLabPageRequest struct {
	Title       *localizedReq   `json:"title"`
	Description *localizedReq   `json:"description"`
	Features    *[]localizedReq `json:"features"`
	Image       *string         `json:"image"`
}

// LabHandler handles HTTP requests for lab pages
type LabHandler struct {
	labService service.LabService
	uploads    *upload.Storage
	logger     *zap.Logger
}

// NewLabHandler creates a new LabHandler
func NewLabHandler(labService service.LabService, uploads *upload.Storage, logger *zap.Logger) *LabHandler {
	return &LabHandler{
		labService: labService,
		uploads:    uploads,
		logger:     logger,
	}
}

// RegisterRoutes registers the lab page routes
func (h *LabHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/labs", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{type}", h.GetByType)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Put("/{type}", h.Update)
		})
	})
}

// List handles the public lab page listing
func (h *LabHandler) List(w http.ResponseWriter, r *http.Request) {
	labs, err := h.labService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list lab pages", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to list labs")
		return
	}

	middleware.RespondWithList(w, http.StatusOK, labs, len(labs))
}

// GetByType handles the public lab page lookup
func (h *LabHandler) GetByType(w http.ResponseWriter, r *http.Request) {
	lab, err := h.labService.GetByType(r.Context(), chi.URLParam(r, "type"))
	if err != nil {
		if errors.Is(err, repository.ErrLabPageNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Lab not found")
			return
		}
		h.logger.Error("Failed to get lab page", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to get lab")
		return
	}

	middleware.RespondWithData(w, http.StatusOK, lab)
}

// Update handles admin lab page updates (multipart with optional image)
func (h *LabHandler) Update(w http.ResponseWriter, r *http.Request) {
	labType := chi.URLParam(r, "type")

	var req UpdateLabPageRequest
	file, err := decodePayload(r, &req)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.ValidationMessage(err))
		return
	}

	if file != nil {
		path, err := h.uploads.Save(file)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, uploadErrorMessage(err))
			return
		}
		req.Image = &path
	}

	patch := service.LabPagePatch{
		Image: req.Image,
	}
	if req.Title != nil {
		title := req.Title.toDomain()
		patch.Title = &title
	}
	if req.Description != nil {
		description := req.Description.toDomain()
		patch.Description = &description
	}
	if req.Features != nil {
		features := make([]domain.Localized, 0, len(*req.Features))
		for _, feature := range *req.Features {
			features = append(features, feature.toDomain())
		}
		patch.Features = &features
	}

	lab, err := h.labService.Update(r.Context(), labType, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrLabPageNotFound), errors.Is(err, service.ErrInvalidLabType):
			middleware.RespondWithError(w, http.StatusNotFound, "Lab not found")
		default:
			h.logger.Error("Lab page update failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to update lab")
		}
		return
	}

	middleware.RespondWithData(w, http.StatusOK, lab)
}
