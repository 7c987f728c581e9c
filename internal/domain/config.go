package domain

import "time"

// SiteStats holds the public counters shown on the landing page.
type SiteStats struct {
	NewProjects      int `json:"newProjects"`
	OngoingProjects  int `json:"ongoingProjects"`
	FinishedProjects int `json:"finishedProjects"`
	Visitors         int `json:"visitors"`
}

// ContactInfo holds the business contact details.
type ContactInfo struct {
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Whatsapp string `json:"whatsapp,omitempty"`
	Address  string `json:"address,omitempty"`
}

// SocialLinks holds the social media profile URLs.
type SocialLinks struct {
	Facebook string `json:"facebook,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// GeneralConfig is the site-wide configuration singleton. Exactly one row
// exists; it is created lazily with zeroed stats on first read.
type GeneralConfig struct {
	Stats       SiteStats   `json:"stats"`
	ContactInfo ContactInfo `json:"contactInfo"`
	SocialLinks SocialLinks `json:"socialLinks"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
