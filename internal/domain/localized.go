package domain

// Localized holds the Arabic and English variants of a bilingual field.
type Localized struct {
	Ar string `json:"ar"`
	En string `json:"en"`
}
