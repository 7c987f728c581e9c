package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"qatrah-api/internal/domain"
)

// LabPageRepository defines the interface for lab page data access.
// Lab pages are keyed by type; the unique constraint on the type column
// guarantees at most one page per type.
type LabPageRepository interface {
	FindByType(ctx context.Context, labType string) (*domain.LabPage, error)
	List(ctx context.Context) ([]*domain.LabPage, error)
	Update(ctx context.Context, page *domain.LabPage) error
}

type labPageRepository struct {
	db *sql.DB
}

// NewLabPageRepository creates a new instance of LabPageRepository
func NewLabPageRepository(db *sql.DB) LabPageRepository {
	return &labPageRepository{db: db}
}

func scanLabPage(row interface{ Scan(...any) error }) (*domain.LabPage, error) {
	page := &domain.LabPage{}
	var features []byte

	err := row.Scan(
		&page.ID,
		&page.Type,
		&page.Title.Ar,
		&page.Title.En,
		&page.Description.Ar,
		&page.Description.En,
		&features,
		&page.Image,
		&page.CreatedAt,
		&page.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(features) > 0 {
		if err := json.Unmarshal(features, &page.Features); err != nil {
			return nil, fmt.Errorf("failed to decode lab page features: %w", err)
		}
	}
	if page.Features == nil {
		page.Features = []domain.Localized{}
	}

	return page, nil
}

// FindByType retrieves the page for one lab type
func (r *labPageRepository) FindByType(ctx context.Context, labType string) (*domain.LabPage, error) {
	query := `
		SELECT id, type, title_ar, title_en, description_ar, description_en,
		       features, image, created_at, updated_at
		FROM lab_pages
		WHERE type = $1
	`

	page, err := scanLabPage(r.db.QueryRowContext(ctx, query, labType))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrLabPageNotFound
		}
		return nil, fmt.Errorf("failed to find lab page by type: %w", err)
	}

	return page, nil
}

// List retrieves all lab pages
func (r *labPageRepository) List(ctx context.Context) ([]*domain.LabPage, error) {
	query := `
		SELECT id, type, title_ar, title_en, description_ar, description_en,
		       features, image, created_at, updated_at
		FROM lab_pages
		ORDER BY type
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list lab pages: %w", err)
	}
	defer rows.Close()

	pages := []*domain.LabPage{}
	for rows.Next() {
		page, err := scanLabPage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lab page: %w", err)
		}
		pages = append(pages, page)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lab pages: %w", err)
	}

	return pages, nil
}

// Update replaces the content of the page identified by its type. The type
// itself is immutable identity and is never rewritten.
func (r *labPageRepository) Update(ctx context.Context, page *domain.LabPage) error {
	features, err := json.Marshal(page.Features)
	if err != nil {
		return fmt.Errorf("failed to encode lab page features: %w", err)
	}

	query := `
		UPDATE lab_pages
		SET title_ar = $2, title_en = $3, description_ar = $4, description_en = $5,
		    features = $6, image = $7, updated_at = $8
		WHERE type = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		page.Type,
		page.Title.Ar,
		page.Title.En,
		page.Description.Ar,
		page.Description.En,
		features,
		page.Image,
		page.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update lab page: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrLabPageNotFound
	}

	return nil
}
