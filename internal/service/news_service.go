package service

import (
	"context"
	"time"

	"qatrah-api/internal/domain"
	"qatrah-api/internal/repository"

	"github.com/google/uuid"
)

// NewsInput carries the validated fields of a news create request
type NewsInput struct {
	Title   domain.Localized
	Content domain.Localized
	Image   string
	Date    *time.Time
}

// NewsPatch carries a partial news update; nil fields retain their stored
// values
type NewsPatch struct {
	Title   *domain.Localized
	Content *domain.Localized
	Image   *string
	Date    *time.Time
}

// NewsService defines the interface for news business logic
type NewsService interface {
	Create(ctx context.Context, input NewsInput) (*domain.News, error)
	Update(ctx context.Context, id uuid.UUID, patch NewsPatch) (*domain.News, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.News, error)
	List(ctx context.Context) ([]*domain.News, error)
}

type newsService struct {
	newsRepo repository.NewsRepository
}

// NewNewsService creates a new instance of NewsService
func NewNewsService(newsRepo repository.NewsRepository) NewsService {
	return &newsService{newsRepo: newsRepo}
}

// Create persists a news article; the publication date defaults to now
func (s *newsService) Create(ctx context.Context, input NewsInput) (*domain.News, error) {
	now := time.Now()
	date := now
	if input.Date != nil {
		date = *input.Date
	}

	article := &domain.News{
		ID:        uuid.New(),
		Title:     input.Title,
		Content:   input.Content,
		Image:     input.Image,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.newsRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// Update merges the patch into the stored article and persists the result
func (s *newsService) Update(ctx context.Context, id uuid.UUID, patch NewsPatch) (*domain.News, error) {
	article, err := s.newsRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		article.Title = *patch.Title
	}
	if patch.Content != nil {
		article.Content = *patch.Content
	}
	if patch.Image != nil {
		article.Image = *patch.Image
	}
	if patch.Date != nil {
		article.Date = *patch.Date
	}
	article.UpdatedAt = time.Now()

	if err := s.newsRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// Delete removes a news article
func (s *newsService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.newsRepo.Delete(ctx, id)
}

// GetByID retrieves a news article by ID
func (s *newsService) GetByID(ctx context.Context, id uuid.UUID) (*domain.News, error) {
	return s.newsRepo.FindByID(ctx, id)
}

// List retrieves all news articles newest-first
func (s *newsService) List(ctx context.Context) ([]*domain.News, error) {
	return s.newsRepo.List(ctx)
}
