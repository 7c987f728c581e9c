package service

import (
	"context"
	"errors"
	"time"

	"qatrah-api/internal/domain"
	"qatrah-api/internal/repository"
)

var ErrInvalidLabType = errors.New("invalid lab type")

// LabPagePatch carries a partial lab page update; nil fields retain their
// stored values. The page type is immutable identity and cannot be patched.
type LabPagePatch struct {
	Title       *domain.Localized
	Description *domain.Localized
	Features    *[]domain.Localized
	Image       *string
}

// LabService defines the interface for lab page business logic
type LabService interface {
	GetByType(ctx context.Context, labType string) (*domain.LabPage, error)
	List(ctx context.Context) ([]*domain.LabPage, error)
	Update(ctx context.Context, labType string, patch LabPagePatch) (*domain.LabPage, error)
}

type labService struct {
	labRepo repository.LabPageRepository
}

// NewLabService creates a new instance of LabService
func NewLabService(labRepo repository.LabPageRepository) LabService {
	return &labService{labRepo: labRepo}
}

// GetByType retrieves the page for one lab type
func (s *labService) GetByType(ctx context.Context, labType string) (*domain.LabPage, error) {
	if !domain.IsValidLabType(labType) {
		return nil, repository.ErrLabPageNotFound
	}
	return s.labRepo.FindByType(ctx, labType)
}

// List retrieves all lab pages
func (s *labService) List(ctx context.Context) ([]*domain.LabPage, error) {
	return s.labRepo.List(ctx)
}

// Update merges the patch into the stored page for the given type
func (s *labService) Update(ctx context.Context, labType string, patch LabPagePatch) (*domain.LabPage, error) {
	if !domain.IsValidLabType(labType) {
		return nil, ErrInvalidLabType
	}

	page, err := s.labRepo.FindByType(ctx, labType)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		page.Title = *patch.Title
	}
	if patch.Description != nil {
		page.Description = *patch.Description
	}
	if patch.Features != nil {
		page.Features = *patch.Features
	}
	if patch.Image != nil {
		page.Image = *patch.Image
	}
	page.UpdatedAt = time.Now()

	if err := s.labRepo.Update(ctx, page); err != nil {
		return nil, err
	}

	return page, nil
}
