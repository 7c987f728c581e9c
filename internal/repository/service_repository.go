package repository

import (
	"context"
	"database/sql"
	"fmt"

	"qatrah-api/internal/domain"

	"github.com/google/uuid"
)

// ServiceRepository defines the interface for lab service data access
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) error
	Update(ctx context.Context, svc *domain.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Service, error)
	List(ctx context.Context) ([]*domain.Service, error)
}

type serviceRepository struct {
	db *sql.DB
}

// NewServiceRepository creates a new instance of ServiceRepository
func NewServiceRepository(db *sql.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

const serviceColumns = `
	id, slug, title_ar, title_en, short_description_ar, short_description_en,
	full_content_ar, full_content_en, icon, image, category, created_at, updated_at
`

func scanService(row interface{ Scan(...any) error }) (*domain.Service, error) {
	svc := &domain.Service{}
	err := row.Scan(
		&svc.ID,
		&svc.Slug,
		&svc.Title.Ar,
		&svc.Title.En,
		&svc.ShortDescription.Ar,
		&svc.ShortDescription.En,
		&svc.FullContent.Ar,
		&svc.FullContent.En,
		&svc.Icon,
		&svc.Image,
		&svc.Category,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// Create inserts a new service into the database
func (r *serviceRepository) Create(ctx context.Context, svc *domain.Service) error {
	query := `
		INSERT INTO services (id, slug, title_ar, title_en, short_description_ar,
			short_description_en, full_content_ar, full_content_en, icon, image,
			category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		svc.ID,
		svc.Slug,
		svc.Title.Ar,
		svc.Title.En,
		svc.ShortDescription.Ar,
		svc.ShortDescription.En,
		svc.FullContent.Ar,
		svc.FullContent.En,
		svc.Icon,
		svc.Image,
		svc.Category,
		svc.CreatedAt,
		svc.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "services_slug_key") {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create service: %w", err)
	}

	return nil
}

// Update updates an existing service, including its recomputed slug
func (r *serviceRepository) Update(ctx context.Context, svc *domain.Service) error {
	query := `
		UPDATE services
		SET slug = $2, title_ar = $3, title_en = $4, short_description_ar = $5,
		    short_description_en = $6, full_content_ar = $7, full_content_en = $8,
		    icon = $9, image = $10, category = $11, updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		svc.ID,
		svc.Slug,
		svc.Title.Ar,
		svc.Title.En,
		svc.ShortDescription.Ar,
		svc.ShortDescription.En,
		svc.FullContent.Ar,
		svc.FullContent.En,
		svc.Icon,
		svc.Image,
		svc.Category,
		svc.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "services_slug_key") {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("failed to update service: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// Delete removes a service from the database
func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM services WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// FindByID retrieves a service by ID
func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	query := fmt.Sprintf(`SELECT %s FROM services WHERE id = $1`, serviceColumns)

	svc, err := scanService(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to find service by ID: %w", err)
	}

	return svc, nil
}

// FindBySlug retrieves a service by its derived slug
func (r *serviceRepository) FindBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	query := fmt.Sprintf(`SELECT %s FROM services WHERE slug = $1`, serviceColumns)

	svc, err := scanService(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to find service by slug: %w", err)
	}

	return svc, nil
}

// List retrieves all services
func (r *serviceRepository) List(ctx context.Context) ([]*domain.Service, error) {
	query := fmt.Sprintf(`SELECT %s FROM services ORDER BY created_at DESC`, serviceColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services := []*domain.Service{}
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, svc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating services: %w", err)
	}

	return services, nil
}
