package transport

import (
	"errors"
	"net/http"
	"time"

	"qatrah-api/internal/middleware"
	"qatrah-api/internal/repository"
	"qatrah-api/internal/service"
	"qatrah-api/internal/upload"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateNewsRequest represents the news creation payload
type CreateNewsRequest struct {
	Title   localizedReq `json:"title"`
	Content localizedReq `json:"content"`
	Image   string       `json:"image"`
	Date    *time.Time   `json:"date"`
}

// UpdateNewsRequest represents the partial news update payload
type UpdateNewsRequest struct {
	Title   *localizedReq `json:"title"`
	Content *localizedReq `json:"content"`
	Image   *string       `json:"image"`
	Date    *time.Time    `json:"date"`
}

// NewsHandler handles HTTP requests for news articles
type NewsHandler struct {
	newsService service.NewsService
	uploads     *upload.Storage
	logger      *zap.Logger
}

// NewNewsHandler creates a new NewsHandler
func NewNewsHandler(newsService service.NewsService, uploads *upload.Storage, logger *zap.Logger) *NewsHandler {
	return &NewsHandler{
		newsService: newsService,
		uploads:     uploads,
		logger:      logger,
	}
}

// RegisterRoutes registers the news routes
func (h *NewsHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/news", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List handles the public news listing, newest-first
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.newsService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list news", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to list news")
		return
	}

	middleware.RespondWithList(w, http.StatusOK, articles, len(articles))
}

// GetByID handles the public single-article lookup
func (h *NewsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid news ID")
		return
	}

	article, err := h.newsService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNewsNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "News article not found")
			return
		}
		h.logger.Error("Failed to get news article", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to get news article")
		return
	}

	middleware.RespondWithData(w, http.StatusOK, article)
}

// Create handles admin news creation (multipart with optional image)
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateNewsRequest
	file, err := decodePayload(r, &req)
	if err != nil {
		h.logger.Debug("News validation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.ValidationMessage(err))
		return
	}

	if file != nil {
		path, err := h.uploads.Save(file)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, uploadErrorMessage(err))
			return
		}
		req.Image = path
	}

	article, err := h.newsService.Create(r.Context(), service.NewsInput{
		Title:   req.Title.toDomain(),
		Content: req.Content.toDomain(),
		Image:   req.Image,
		Date:    req.Date,
	})
	if err != nil {
		h.logger.Error("News creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to create news article")
		return
	}

	middleware.RespondWithData(w, http.StatusCreated, article)
}

// Update handles admin news updates with partial merge semantics
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid news ID")
		return
	}

	var req UpdateNewsRequest
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

	patch := service.NewsPatch{
		Image: req.Image,
		Date:  req.Date,
	}
	if req.Title != nil {
		title := req.Title.toDomain()
		patch.Title = &title
	}
	if req.Content != nil {
		content := req.Content.toDomain()
		patch.Content = &content
	}

	article, err := h.newsService.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNewsNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "News article not found")
			return
		}
		h.logger.Error("News update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to update news article")
		return
	}

	middleware.RespondWithData(w, http.StatusOK, article)
}

// Delete handles admin news deletion
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid news ID")
		return
	}

	if err := h.newsService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNewsNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "News article not found")
			return
		}
		h.logger.Error("News deletion failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to delete news article")
		return
	}

	middleware.RespondWithData(w, http.StatusOK, struct{}{})
}
