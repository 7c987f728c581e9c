package repository

import (
	"context"
	"database/sql"
	"fmt"

	"qatrah-api/internal/domain"

	"github.com/google/uuid"
)

// ProductFilter holds the optional equality filters for product listing.
type ProductFilter struct {
	Category    string
	StockStatus string
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter, sortBy string, sortOrder SortOrder) ([]*domain.Product, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product into the database using parameterized queries
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name_ar, name_en, category, description_ar, description_en,
			image, stock_status, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name.Ar,
		product.Name.En,
		product.Category,
		product.Description.Ar,
		product.Description.En,
		product.Image,
		product.StockStatus,
		product.Price,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update updates an existing product in the database
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name_ar = $2, name_en = $3, category = $4, description_ar = $5,
		    description_en = $6, image = $7, stock_status = $8, price = $9,
		    updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name.Ar,
		product.Name.En,
		product.Category,
		product.Description.Ar,
		product.Description.En,
		product.Image,
		product.StockStatus,
		product.Price,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product. Bookings referencing it are deliberately left
// untouched; the reference is weak.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name.Ar,
		&product.Name.En,
		&product.Category,
		&product.Description.Ar,
		&product.Description.En,
		&product.Image,
		&product.StockStatus,
		&product.Price,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, name_ar, name_en, category, description_ar, description_en,
		       image, stock_status, price, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves products with optional equality filters and sorting
func (r *productRepository) List(ctx context.Context, filter ProductFilter, sortBy string, sortOrder SortOrder) ([]*domain.Product, error) {
	// Validate sort field to prevent SQL injection
	validSortFields := map[string]string{
		"name":        "name_en",
		"price":       "price",
		"category":    "category",
		"stockStatus": "stock_status",
		"createdAt":   "created_at",
	}

	sortColumn, ok := validSortFields[sortBy]
	if !ok {
		sortColumn = "created_at"
	}

	if sortOrder != SortOrderAsc && sortOrder != SortOrderDesc {
		sortOrder = SortOrderDesc
	}

	whereClause := ""
	args := []interface{}{}
	argIndex := 1

	if filter.Category != "" {
		whereClause = fmt.Sprintf("WHERE category = $%d", argIndex)
		args = append(args, filter.Category)
		argIndex++
	}

	if filter.StockStatus != "" {
		if whereClause == "" {
			whereClause = fmt.Sprintf("WHERE stock_status = $%d", argIndex)
		} else {
			whereClause += fmt.Sprintf(" AND stock_status = $%d", argIndex)
		}
		args = append(args, filter.StockStatus)
	}

	query := fmt.Sprintf(`
		SELECT id, name_ar, name_en, category, description_ar, description_en,
		       image, stock_status, price, created_at, updated_at
		FROM products
		%s
		ORDER BY %s %s
	`, whereClause, sortColumn, sortOrder)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
