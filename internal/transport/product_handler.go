package transport

import (
	"errors"
	"net/http"
	"strings"

	"qatrah-api/internal/domain"
	"qatrah-api/internal/middleware"
	"qatrah-api/internal/repository"
	"qatrah-api/internal/service"
	"qatrah-api/internal/upload"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// localizedReq is the request form of a bilingual field; both language
// variants are independently required wherever the field is present
type localizedReq struct {
	Ar string `json:"ar" validate:"required"`
	En string `json:"en" validate:"required"`
}

func (l localizedReq) toDomain() domain.Localized {
	return domain.Localized{Ar: l.Ar, En: l.En}
}

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Name        localizedReq `json:"name"`
	Category    string       `json:"category" validate:"required,oneof=chemicals lab-tools devices"`
	Description localizedReq `json:"description"`
	Image       string       `json:"image"`
	StockStatus string       `json:"stockStatus" validate:"omitempty,oneof=available out_of_stock pre_order"`
	Price       *float64     `json:"price" validate:"required,gte=0"`
}

// UpdateProductRequest represents the partial product update payload
type UpdateProductRequest struct {
	Name        *localizedReq `json:"name"`
	Category    *string       `json:"category" validate:"omitempty,oneof=chemicals lab-tools devices"`
	Description *localizedReq `json:"description"`
	Image       *string       `json:"image"`
	StockStatus *string       `json:"stockStatus" validate:"omitempty,oneof=available out_of_stock pre_order"`
	Price       *float64      `json:"price" validate:"omitempty,gte=0"`
}

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	productService service.ProductService
	uploads        *upload.Storage
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, uploads *upload.Storage, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		uploads:        uploads,
		logger:         logger,
	}
}

// RegisterRoutes registers the product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// productFields maps API field names to projection targets for the select
// query parameter
var productFields = map[string]func(*domain.Product) any{
	"id":          func(p *domain.Product) any { return p.ID },
	"name":        func(p *domain.Product) any { return p.Name },
	"category":    func(p *domain.Product) any { return p.Category },
	"description": func(p *domain.Product) any { return p.Description },
	"image":       func(p *domain.Product) any { return p.Image },
	"stockStatus": func(p *domain.Product) any { return p.StockStatus },
	"price":       func(p *domain.Product) any { return p.Price },
	"createdAt":   func(p *domain.Product) any { return p.CreatedAt },
	"updatedAt":   func(p *domain.Product) any { return p.UpdatedAt },
}

// List handles the public product listing with filtering, sorting and
// field selection
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.ProductFilter{
		Category:    r.URL.Query().Get("category"),
		StockStatus: r.URL.Query().Get("stockStatus"),
	}

	sortBy, sortOrder := parseSort(r.URL.Query().Get("sort"))

	products, err := h.productService.List(r.Context(), filter, sortBy, sortOrder)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}

	if selectParam := r.URL.Query().Get("select"); selectParam != "" {
		projected := projectProducts(products, strings.Split(selectParam, ","))
		middleware.RespondWithList(w, http.StatusOK, projected, len(projected))
		return
	}

	middleware.RespondWithList(w, http.StatusOK, products, len(products))
}

// Create handles admin product creation (multipart with optional image)
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	file, err := decodePayload(r, &req)
	if err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))
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

	product, err := h.productService.Create(r.Context(), service.ProductInput{
		Name:        req.Name.toDomain(),
		Category:    req.Category,
		Description: req.Description.toDomain(),
		Image:       req.Image,
		StockStatus: req.StockStatus,
		Price:       *req.Price,
	})
	if err != nil {
		h.logger.Error("Product creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	middleware.RespondWithData(w, http.StatusCreated, product)
}

// Update handles admin product updates with partial merge semantics
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
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

	patch := service.ProductPatch{
		Category:    req.Category,
		Image:       req.Image,
		StockStatus: req.StockStatus,
		Price:       req.Price,
	}
	if req.Name != nil {
		name := req.Name.toDomain()
		patch.Name = &name
	}
	if req.Description != nil {
		description := req.Description.toDomain()
		patch.Description = &description
	}

	product, err := h.productService.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.Error("Product update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	middleware.RespondWithData(w, http.StatusOK, product)
}

// Delete handles admin product deletion
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.Error("Product deletion failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	middleware.RespondWithData(w, http.StatusOK, struct{}{})
}

// parseSort interprets the public sort parameter ("price" ascending,
// "-price" descending)
func parseSort(param string) (string, repository.SortOrder) {
	field := strings.TrimSpace(strings.Split(param, ",")[0])
	order := repository.SortOrderAsc
	if strings.HasPrefix(field, "-") {
		field = strings.TrimPrefix(field, "-")
		order = repository.SortOrderDesc
	}
	if field == "" {
		return "createdAt", repository.SortOrderDesc
	}
	return field, order
}

// projectProducts shapes the list response down to the selected fields,
// ignoring unknown field names
func projectProducts(products []*domain.Product, fields []string) []map[string]any {
	projected := make([]map[string]any, 0, len(products))
	for _, product := range products {
		row := map[string]any{}
		for _, field := range fields {
			field = strings.TrimSpace(field)
			if getter, ok := productFields[field]; ok {
				row[field] = getter(product)
			}
		}
		projected = append(projected, row)
	}
	return projected
}

func uploadErrorMessage(err error) string {
	if errors.Is(err, upload.ErrFileTooLarge) || errors.Is(err, upload.ErrFileTypeNotAllowed) {
		return err.Error()
	}
	return "Failed to store uploaded file"
}
