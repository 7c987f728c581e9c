package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"qatrah-api/internal/domain"
	"qatrah-api/internal/mail"
	"qatrah-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// TicketPrefix starts every generated ticket number.
	TicketPrefix = "TKT-"

	ticketSuffixLen   = 9
	ticketCharset     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxTicketAttempts = 5
)

var ErrInvalidStatus = errors.New("invalid booking status")

// BookingInput carries the validated fields of a booking request
type BookingInput struct {
	ClientName     string
	Organization   string
	Phone          string
	Email          string
	RequestType    string
	RelatedProduct *uuid.UUID
	Details        string
}

// BookingService defines the interface for booking business logic
type BookingService interface {
	Create(ctx context.Context, input BookingInput) (*domain.Booking, error)
	List(ctx context.Context) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	mailer      mail.Mailer
	adminEmail  string
	logger      *zap.Logger
}

// NewBookingService creates a new instance of BookingService
func NewBookingService(bookingRepo repository.BookingRepository, mailer mail.Mailer, adminEmail string, logger *zap.Logger) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		mailer:      mailer,
		adminEmail:  adminEmail,
		logger:      logger,
	}
}

// Create persists a booking with a freshly generated ticket number, retrying
// on the (unlikely) unique-key collision, then notifies the admin address.
// Notification failure never fails the booking.
func (s *bookingService) Create(ctx context.Context, input BookingInput) (*domain.Booking, error) {
	booking := &domain.Booking{
		ID:             uuid.New(),
		ClientName:     input.ClientName,
		Organization:   input.Organization,
		Phone:          input.Phone,
		Email:          input.Email,
		RequestType:    input.RequestType,
		RelatedProduct: input.RelatedProduct,
		Details:        input.Details,
		Status:         domain.BookingStatusNew,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	var err error
	for attempt := 0; attempt < maxTicketAttempts; attempt++ {
		booking.TicketNumber, err = generateTicketNumber()
		if err != nil {
			return nil, err
		}

		err = s.bookingRepo.Create(ctx, booking)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicateTicket) {
			return nil, err
		}
		s.logger.Warn("Ticket number collision, regenerating",
			zap.String("ticket_number", booking.TicketNumber),
			zap.Int("attempt", attempt+1),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to assign a unique ticket number: %w", err)
	}

	s.notifyAdmin(booking)

	return booking, nil
}

// List retrieves all bookings with related products populated
func (s *bookingService) List(ctx context.Context) ([]*domain.Booking, error) {
	return s.bookingRepo.List(ctx)
}

// UpdateStatus moves a booking to a new status within the closed status set
func (s *bookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Booking, error) {
	if !domain.IsValidBookingStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.bookingRepo.UpdateStatus(ctx, id, status)
}

// notifyAdmin sends the plaintext booking notification. Errors are logged
// and swallowed; the booking has already been persisted.
func (s *bookingService) notifyAdmin(booking *domain.Booking) {
	organization := booking.Organization
	if organization == "" {
		organization = "N/A"
	}
	details := booking.Details
	if details == "" {
		details = "No details provided"
	}

	body := fmt.Sprintf(`New booking request received!
Ticket Number: %s
Client Name: %s
Organization: %s
Phone: %s
Email: %s
Request Type: %s
Details: %s
`,
		booking.TicketNumber,
		booking.ClientName,
		organization,
		booking.Phone,
		booking.Email,
		booking.RequestType,
		details,
	)

	subject := "New Booking Request - " + booking.TicketNumber
	if err := s.mailer.Send(s.adminEmail, subject, body); err != nil {
		s.logger.Error("Booking notification could not be sent",
			zap.String("ticket_number", booking.TicketNumber),
			zap.Error(err),
		)
	}
}

// generateTicketNumber returns the fixed prefix plus a random uppercase
// alphanumeric suffix
func generateTicketNumber() (string, error) {
	buf := make([]byte, ticketSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate ticket number: %w", err)
	}

	suffix := make([]byte, ticketSuffixLen)
	for i, b := range buf {
		suffix[i] = ticketCharset[int(b)%len(ticketCharset)]
	}

	return TicketPrefix + string(suffix), nil
}
