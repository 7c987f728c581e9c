package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product categories.
const (
	ProductCategoryChemicals = "chemicals"
	ProductCategoryLabTools  = "lab-tools"
	ProductCategoryDevices   = "devices"
)

// Stock statuses.
const (
	StockAvailable  = "available"
	StockOutOfStock = "out_of_stock"
	StockPreOrder   = "pre_order"
)

// ProductCategories lists the accepted product categories.
func ProductCategories() []string {
	return []string{ProductCategoryChemicals, ProductCategoryLabTools, ProductCategoryDevices}
}

// StockStatuses lists the accepted stock statuses.
func StockStatuses() []string {
	return []string{StockAvailable, StockOutOfStock, StockPreOrder}
}

// Product represents a catalog item sold or supplied by the lab.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        Localized `json:"name"`
	Category    string    `json:"category" db:"category"`
	Description Localized `json:"description"`
	Image       string    `json:"image,omitempty" db:"image"`
	StockStatus string    `json:"stockStatus" db:"stock_status"`
	Price       float64   `json:"price" db:"price"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
