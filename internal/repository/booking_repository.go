package repository

import (
	"context"
	"database/sql"
	"fmt"

	"qatrah-api/internal/domain"

	"github.com/google/uuid"
)

// BookingRepository defines the interface for booking data access
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Booking, error)
}

type bookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new instance of BookingRepository
func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create inserts a new booking. A unique-key collision on the ticket number
// is surfaced as ErrDuplicateTicket so the caller can regenerate and retry.
func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, ticket_number, client_name, organization, phone, email,
			request_type, related_product, details, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		booking.ID,
		booking.TicketNumber,
		booking.ClientName,
		booking.Organization,
		booking.Phone,
		booking.Email,
		booking.RequestType,
		booking.RelatedProduct,
		booking.Details,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "bookings_ticket_number_key") {
			return ErrDuplicateTicket
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

const bookingColumns = `
	b.id, b.ticket_number, b.client_name, b.organization, b.phone, b.email,
	b.request_type, b.related_product, b.details, b.status, b.created_at, b.updated_at,
	p.id, p.name_ar, p.name_en, p.category, p.description_ar, p.description_en,
	p.image, p.stock_status, p.price, p.created_at, p.updated_at
`

// scanBooking scans one joined booking row. The related product is a weak
// reference: a missing product leaves booking.Product nil, never an error.
func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	booking := &domain.Booking{}
	var (
		productID     uuid.NullUUID
		nameAr        sql.NullString
		nameEn        sql.NullString
		category      sql.NullString
		descriptionAr sql.NullString
		descriptionEn sql.NullString
		image         sql.NullString
		stockStatus   sql.NullString
		price         sql.NullFloat64
		createdAt     sql.NullTime
		updatedAt     sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.TicketNumber,
		&booking.ClientName,
		&booking.Organization,
		&booking.Phone,
		&booking.Email,
		&booking.RequestType,
		&booking.RelatedProduct,
		&booking.Details,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&productID,
		&nameAr,
		&nameEn,
		&category,
		&descriptionAr,
		&descriptionEn,
		&image,
		&stockStatus,
		&price,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if productID.Valid {
		booking.Product = &domain.Product{
			ID:          productID.UUID,
			Name:        domain.Localized{Ar: nameAr.String, En: nameEn.String},
			Category:    category.String,
			Description: domain.Localized{Ar: descriptionAr.String, En: descriptionEn.String},
			Image:       image.String,
			StockStatus: stockStatus.String,
			Price:       price.Float64,
			CreatedAt:   createdAt.Time,
			UpdatedAt:   updatedAt.Time,
		}
	}

	return booking, nil
}

// FindByID retrieves a booking by ID with its related product populated
func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM bookings b
		LEFT JOIN products p ON p.id = b.related_product
		WHERE b.id = $1
	`, bookingColumns)

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}

	return booking, nil
}

// List retrieves all bookings newest-first with related products populated
func (r *bookingRepository) List(ctx context.Context) ([]*domain.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM bookings b
		LEFT JOIN products p ON p.id = b.related_product
		ORDER BY b.created_at DESC
	`, bookingColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*domain.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// UpdateStatus sets the status of a booking and returns the updated document
func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return nil, ErrBookingNotFound
	}

	return r.FindByID(ctx, id)
}
