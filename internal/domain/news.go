package domain

import (
	"time"

	"github.com/google/uuid"
)

// News represents a published news article. Lists are read newest-first
// by Date, which defaults to the creation time.
type News struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     Localized `json:"title"`
	Content   Localized `json:"content"`
	Image     string    `json:"image,omitempty" db:"image"`
	Date      time.Time `json:"date" db:"date"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
