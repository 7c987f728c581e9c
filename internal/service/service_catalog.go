package service

import (
	"context"
	"time"

	"qatrah-api/internal/domain"
	"qatrah-api/internal/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ServiceInput carries the validated fields of a service create request
type ServiceInput struct {
	Title            domain.Localized
	ShortDescription domain.Localized
	FullContent      domain.Localized
	Icon             string
	Image            string
	Category         string
}

// ServicePatch carries a partial service update; nil fields retain their
// stored values
type ServicePatch struct {
	Title            *domain.Localized
	ShortDescription *domain.Localized
	FullContent      *domain.Localized
	Icon             *string
	Image            *string
	Category         *string
}

// ServiceCatalog defines the interface for lab service business logic.
// The slug is recomputed from the English title on every save that carries
// one; a renamed service changes its public address and the old slug is
// not redirected.
type ServiceCatalog interface {
	Create(ctx context.Context, input ServiceInput) (*domain.Service, error)
	Update(ctx context.Context, id uuid.UUID, patch ServicePatch) (*domain.Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetBySlug(ctx context.Context, slug string) (*domain.Service, error)
	List(ctx context.Context) ([]*domain.Service, error)
}

type serviceCatalog struct {
	serviceRepo repository.ServiceRepository
}

// NewServiceCatalog creates a new instance of ServiceCatalog
func NewServiceCatalog(serviceRepo repository.ServiceRepository) ServiceCatalog {
	return &serviceCatalog{serviceRepo: serviceRepo}
}

// Slugify derives the public slug from an English title
func Slugify(titleEn string) string {
	return slug.Make(titleEn)
}

// Create persists a new service with its slug derived from the English title
func (s *serviceCatalog) Create(ctx context.Context, input ServiceInput) (*domain.Service, error) {
	svc := &domain.Service{
		ID:               uuid.New(),
		Slug:             Slugify(input.Title.En),
		Title:            input.Title,
		ShortDescription: input.ShortDescription,
		FullContent:      input.FullContent,
		Icon:             input.Icon,
		Image:            input.Image,
		Category:         input.Category,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}

	return svc, nil
}

// Update merges the patch into the stored service. A patch carrying a title
// recomputes the slug.
func (s *serviceCatalog) Update(ctx context.Context, id uuid.UUID, patch ServicePatch) (*domain.Service, error) {
	svc, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		svc.Title = *patch.Title
		svc.Slug = Slugify(svc.Title.En)
	}
	if patch.ShortDescription != nil {
		svc.ShortDescription = *patch.ShortDescription
	}
	if patch.FullContent != nil {
		svc.FullContent = *patch.FullContent
	}
	if patch.Icon != nil {
		svc.Icon = *patch.Icon
	}
	if patch.Image != nil {
		svc.Image = *patch.Image
	}
	if patch.Category != nil {
		svc.Category = *patch.Category
	}
	svc.UpdatedAt = time.Now()

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}

	return svc, nil
}

// Delete removes a service
func (s *serviceCatalog) Delete(ctx context.Context, id uuid.UUID) error {
	return s.serviceRepo.Delete(ctx, id)
}

// GetBySlug retrieves a service by its public slug
func (s *serviceCatalog) GetBySlug(ctx context.Context, serviceSlug string) (*domain.Service, error) {
	return s.serviceRepo.FindBySlug(ctx, serviceSlug)
}

// List retrieves all services
func (s *serviceCatalog) List(ctx context.Context) ([]*domain.Service, error) {
	return s.serviceRepo.List(ctx)
}
