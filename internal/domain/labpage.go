package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lab page types. Each type has exactly one page; the type is its identity.
const (
	LabTypeOrganic      = "organic"
	LabTypeInorganic    = "inorganic"
	LabTypeMicrobiology = "microbiology"
)

// DefaultLabImage is the placeholder used until an image is uploaded.
const DefaultLabImage = "no-photo.jpg"

// LabTypes lists the accepted lab page types.
func LabTypes() []string {
	return []string{LabTypeOrganic, LabTypeInorganic, LabTypeMicrobiology}
}

// IsValidLabType reports whether t names a known lab page.
func IsValidLabType(t string) bool {
	for _, v := range LabTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// LabPage represents the content of one laboratory page.
type LabPage struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Type        string      `json:"type" db:"type"`
	Title       Localized   `json:"title"`
	Description Localized   `json:"description"`
	Features    []Localized `json:"features"`
	Image       string      `json:"image" db:"image"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
}
