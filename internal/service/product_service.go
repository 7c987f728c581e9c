package service

import (
	"context"
	"time"

	"qatrah-api/internal/domain"
	"qatrah-api/internal/repository"

	"github.com/google/uuid"
)

// ProductInput carries the validated fields of a product create request
type ProductInput struct {
	Name        domain.Localized
	Category    string
	Description domain.Localized
	Image       string
	StockStatus string
	Price       float64
}

// ProductPatch carries a partial product update; nil fields retain their
// stored values
type ProductPatch struct {
	Name        *domain.Localized
	Category    *string
	Description *domain.Localized
	Image       *string
	StockStatus *string
	Price       *float64
}

// ProductService defines the interface for product business logic
type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, filter repository.ProductFilter, sortBy string, sortOrder repository.SortOrder) ([]*domain.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// Create persists a new product
func (s *productService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	stockStatus := input.StockStatus
	if stockStatus == "" {
		stockStatus = domain.StockAvailable
	}

	product := &domain.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Image:       input.Image,
		StockStatus: stockStatus,
		Price:       input.Price,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Update merges the patch into the stored product and persists the result
func (s *productService) Update(ctx context.Context, id uuid.UUID, patch ProductPatch) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Image != nil {
		product.Image = *patch.Image
	}
	if patch.StockStatus != nil {
		product.StockStatus = *patch.StockStatus
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Delete removes a product
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}

// GetByID retrieves a product by ID
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// List retrieves products with the given filter and sort
func (s *productService) List(ctx context.Context, filter repository.ProductFilter, sortBy string, sortOrder repository.SortOrder) ([]*domain.Product, error) {
	return s.productRepo.List(ctx, filter, sortBy, sortOrder)
}
