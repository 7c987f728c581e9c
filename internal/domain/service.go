package domain

import (
	"time"

	"github.com/google/uuid"
)

// Service categories.
const (
	ServiceCategoryConsulting  = "consulting"
	ServiceCategoryQuality     = "quality"
	ServiceCategoryMaintenance = "maintenance"
	ServiceCategoryOperation   = "operation"
)

// ServiceCategories lists the accepted service categories.
func ServiceCategories() []string {
	return []string{
		ServiceCategoryConsulting,
		ServiceCategoryQuality,
		ServiceCategoryMaintenance,
		ServiceCategoryOperation,
	}
}

// Service represents an offered lab service. The slug is derived from the
// English title on every save and is the public lookup key; it is not
// independently settable.
type Service struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Slug             string    `json:"slug" db:"slug"`
	Title            Localized `json:"title"`
	ShortDescription Localized `json:"shortDescription"`
	FullContent      Localized `json:"fullContent"`
	Icon             string    `json:"icon,omitempty" db:"icon"`
	Image            string    `json:"image,omitempty" db:"image"`
	Category         string    `json:"category" db:"category"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}
