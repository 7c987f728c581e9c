package domain

import (
	"time"

	"github.com/google/uuid"
)

// Request types a client can book.
const (
	RequestConsultationBooking = "consultation_booking"
	RequestSampleCollection    = "sample_collection"
	RequestQualityConsultation = "quality_consultation"
	RequestMaintenanceSupport  = "maintenance_support"
	RequestChemicalSupply      = "chemical_supply"
)

// Booking statuses.
const (
	BookingStatusNew        = "new"
	BookingStatusInProgress = "in_progress"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
)

// RequestTypes lists the accepted booking request types.
func RequestTypes() []string {
	return []string{
		RequestConsultationBooking,
		RequestSampleCollection,
		RequestQualityConsultation,
		RequestMaintenanceSupport,
		RequestChemicalSupply,
	}
}

// BookingStatuses lists the accepted booking statuses.
func BookingStatuses() []string {
	return []string{
		BookingStatusNew,
		BookingStatusInProgress,
		BookingStatusCompleted,
		BookingStatusCancelled,
	}
}

// IsValidBookingStatus reports whether s is one of the closed status set.
func IsValidBookingStatus(s string) bool {
	for _, v := range BookingStatuses() {
		if v == s {
			return true
		}
	}
	return false
}

// Booking represents a client request ticket. RelatedProduct is a weak
// reference: the referenced product may have been deleted, in which case
// Product stays nil on reads.
type Booking struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	TicketNumber   string     `json:"ticketNumber" db:"ticket_number"`
	ClientName     string     `json:"clientName" db:"client_name"`
	Organization   string     `json:"organization,omitempty" db:"organization"`
	Phone          string     `json:"phone" db:"phone"`
	Email          string     `json:"email" db:"email"`
	RequestType    string     `json:"requestType" db:"request_type"`
	RelatedProduct *uuid.UUID `json:"relatedProduct,omitempty" db:"related_product"`
	Product        *Product   `json:"product,omitempty" db:"-"`
	Details        string     `json:"details,omitempty" db:"details"`
	Status         string     `json:"status" db:"status"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}
