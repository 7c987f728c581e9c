package repository

import (
	"context"
	"database/sql"
	"fmt"

	"qatrah-api/internal/domain"

	"github.com/google/uuid"
)

// NewsRepository defines the interface for news article data access
type NewsRepository interface {
	Create(ctx context.Context, article *domain.News) error
	Update(ctx context.Context, article *domain.News) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.News, error)
	List(ctx context.Context) ([]*domain.News, error)
}

type newsRepository struct {
	db *sql.DB
}

// NewNewsRepository creates a new instance of NewsRepository
func NewNewsRepository(db *sql.DB) NewsRepository {
	return &newsRepository{db: db}
}

func scanNews(row interface{ Scan(...any) error }) (*domain.News, error) {
	article := &domain.News{}
	err := row.Scan(
		&article.ID,
		&article.Title.Ar,
		&article.Title.En,
		&article.Content.Ar,
		&article.Content.En,
		&article.Image,
		&article.Date,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Create inserts a new news article into the database
func (r *newsRepository) Create(ctx context.Context, article *domain.News) error {
	query := `
		INSERT INTO news (id, title_ar, title_en, content_ar, content_en, image,
			date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		article.ID,
		article.Title.Ar,
		article.Title.En,
		article.Content.Ar,
		article.Content.En,
		article.Image,
		article.Date,
		article.CreatedAt,
		article.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create news article: %w", err)
	}

	return nil
}

// Update updates an existing news article
func (r *newsRepository) Update(ctx context.Context, article *domain.News) error {
	query := `
		UPDATE news
		SET title_ar = $2, title_en = $3, content_ar = $4, content_en = $5,
		    image = $6, date = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		article.ID,
		article.Title.Ar,
		article.Title.En,
		article.Content.Ar,
		article.Content.En,
		article.Image,
		article.Date,
		article.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update news article: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNewsNotFound
	}

	return nil
}

// Delete removes a news article from the database
func (r *newsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM news WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete news article: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNewsNotFound
	}

	return nil
}

// FindByID retrieves a news article by ID
func (r *newsRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.News, error) {
	query := `
		SELECT id, title_ar, title_en, content_ar, content_en, image, date,
		       created_at, updated_at
		FROM news
		WHERE id = $1
	`

	article, err := scanNews(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("failed to find news article by ID: %w", err)
	}

	return article, nil
}

// List retrieves all news articles newest-first by publication date
func (r *newsRepository) List(ctx context.Context) ([]*domain.News, error) {
	query := `
		SELECT id, title_ar, title_en, content_ar, content_en, image, date,
		       created_at, updated_at
		FROM news
		ORDER BY date DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list news articles: %w", err)
	}
	defer rows.Close()

	articles := []*domain.News{}
	for rows.Next() {
		article, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan news article: %w", err)
		}
		articles = append(articles, article)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating news articles: %w", err)
	}

	return articles, nil
}
