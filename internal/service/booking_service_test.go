package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"qatrah-api/internal/domain"
	"qatrah-api/internal/repository"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

// Mock repository for testing. collideFirst forces the first N creates to
// fail with a ticket collision.
type mockBookingRepository struct {
	bookings     map[uuid.UUID]*domain.Booking
	collideFirst int
	creates      int
}

func newMockBookingRepository() *mockBookingRepository {
	return &mockBookingRepository{
		bookings: make(map[uuid.UUID]*domain.Booking),
	}
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	m.creates++
	if m.creates <= m.collideFirst {
		return repository.ErrDuplicateTicket
	}

	copied := *booking
	m.bookings[booking.ID] = &copied
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	booking, exists := m.bookings[id]
	if !exists {
		return nil, repository.ErrBookingNotFound
	}
	return booking, nil
}

func (m *mockBookingRepository) List(ctx context.Context) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0, len(m.bookings))
	for _, booking := range m.bookings {
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Booking, error) {
	booking, exists := m.bookings[id]
	if !exists {
		return nil, repository.ErrBookingNotFound
	}
	booking.Status = status
	return booking, nil
}

// recordingMailer captures sent mail; failingMailer always errors.
type recordingMailer struct {
	to      string
	subject string
	body    string
	sends   int
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.to = to
	m.subject = subject
	m.body = body
	m.sends++
	return nil
}

type failingMailer struct{}

func (m *failingMailer) Send(to, subject, body string) error {
	return errors.New("smtp unreachable")
}

func TestProperty_TicketNumbersHaveFixedShape(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("generated ticket numbers are the prefix plus nine uppercase alphanumerics", prop.ForAll(
		func(_ int) bool {
			ticket, err := generateTicketNumber()
			if err != nil {
				t.Logf("Ticket generation failed: %v", err)
				return false
			}

			if !strings.HasPrefix(ticket, TicketPrefix) {
				return false
			}

			suffix := strings.TrimPrefix(ticket, TicketPrefix)
			if len(suffix) != ticketSuffixLen {
				return false
			}

			for _, c := range suffix {
				if !strings.ContainsRune(ticketCharset, c) {
					return false
				}
			}

			return true
		},
		gen.Int(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCreateAssignsTicketAndDefaults(t *testing.T) {
	repo := newMockBookingRepository()
	mailer := &recordingMailer{}
	service := NewBookingService(repo, mailer, "admin@example.com", zap.NewNop())

	booking, err := service.Create(context.Background(), BookingInput{
		ClientName:  "Sara Ahmed",
		Phone:       "+201001234567",
		Email:       "sara@example.com",
		RequestType: domain.RequestSampleCollection,
		Details:     "Weekly water sample pickup",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if booking.Status != domain.BookingStatusNew {
		t.Errorf("Expected new bookings to start in status %q, got %q", domain.BookingStatusNew, booking.Status)
	}
	if !strings.HasPrefix(booking.TicketNumber, TicketPrefix) {
		t.Errorf("Expected ticket number with prefix %q, got %q", TicketPrefix, booking.TicketNumber)
	}

	// Notification goes to the configured admin address and names the ticket
	if mailer.sends != 1 {
		t.Fatalf("Expected exactly one notification, got %d", mailer.sends)
	}
	if mailer.to != "admin@example.com" {
		t.Errorf("Notification sent to %q", mailer.to)
	}
	if !strings.Contains(mailer.subject, booking.TicketNumber) {
		t.Errorf("Notification subject %q does not name the ticket", mailer.subject)
	}
	if !strings.Contains(mailer.body, "Sara Ahmed") {
		t.Errorf("Notification body does not name the client: %q", mailer.body)
	}
}

func TestCreateRetriesOnTicketCollision(t *testing.T) {
	repo := newMockBookingRepository()
	repo.collideFirst = 2
	service := NewBookingService(repo, &recordingMailer{}, "admin@example.com", zap.NewNop())

	booking, err := service.Create(context.Background(), BookingInput{
		ClientName:  "Omar",
		Phone:       "+201001234567",
		RequestType: domain.RequestMaintenanceSupport,
	})
	if err != nil {
		t.Fatalf("Create failed despite retries: %v", err)
	}

	if repo.creates != 3 {
		t.Errorf("Expected 3 create attempts, got %d", repo.creates)
	}
	if booking.TicketNumber == "" {
		t.Error("Booking ended up without a ticket number")
	}
}

func TestCreateGivesUpAfterMaxCollisions(t *testing.T) {
	repo := newMockBookingRepository()
	repo.collideFirst = maxTicketAttempts
	service := NewBookingService(repo, &recordingMailer{}, "admin@example.com", zap.NewNop())

	_, err := service.Create(context.Background(), BookingInput{
		ClientName:  "Omar",
		Phone:       "+201001234567",
		RequestType: domain.RequestMaintenanceSupport,
	})
	if err == nil {
		t.Fatal("Expected create to fail after exhausting ticket attempts")
	}
	if !errors.Is(err, repository.ErrDuplicateTicket) {
		t.Errorf("Expected the collision to surface in the error chain, got %v", err)
	}
}

// A dead mail server must not lose bookings.
func TestNotificationFailureDoesNotFailBooking(t *testing.T) {
	repo := newMockBookingRepository()
	service := NewBookingService(repo, &failingMailer{}, "admin@example.com", zap.NewNop())

	booking, err := service.Create(context.Background(), BookingInput{
		ClientName:  "Sara Ahmed",
		Phone:       "+201001234567",
		RequestType: domain.RequestChemicalSupply,
	})
	if err != nil {
		t.Fatalf("Create failed because of the mailer: %v", err)
	}

	if _, err := repo.FindByID(context.Background(), booking.ID); err != nil {
		t.Errorf("Booking was not persisted: %v", err)
	}
}

func TestNotificationFillsOptionalFields(t *testing.T) {
	repo := newMockBookingRepository()
	mailer := &recordingMailer{}
	service := NewBookingService(repo, mailer, "admin@example.com", zap.NewNop())

	_, err := service.Create(context.Background(), BookingInput{
		ClientName:  "Sara Ahmed",
		Phone:       "+201001234567",
		RequestType: domain.RequestQualityConsultation,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !strings.Contains(mailer.body, "N/A") {
		t.Errorf("Missing organization should render as N/A, body: %q", mailer.body)
	}
	if !strings.Contains(mailer.body, "No details provided") {
		t.Errorf("Missing details should render as a placeholder, body: %q", mailer.body)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := newMockBookingRepository()
	service := NewBookingService(repo, &recordingMailer{}, "admin@example.com", zap.NewNop())

	booking, err := service.Create(context.Background(), BookingInput{
		ClientName:  "Omar",
		Phone:       "+201001234567",
		RequestType: domain.RequestConsultationBooking,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := service.UpdateStatus(context.Background(), booking.ID, "shipped"); err != ErrInvalidStatus {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}

	updated, err := service.UpdateStatus(context.Background(), booking.ID, domain.BookingStatusInProgress)
	if err != nil {
		t.Fatalf("Valid status update failed: %v", err)
	}
	if updated.Status != domain.BookingStatusInProgress {
		t.Errorf("Status not applied, got %q", updated.Status)
	}
}
