package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SparePart is an inventory item used by machine maintenance.
type SparePart struct {
	ID              string          `gorm:"primaryKey;size:36" json:"id"`
	Code            string          `gorm:"uniqueIndex;size:64;not null" json:"code"`
	Name            string          `gorm:"size:256;not null" json:"name"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	SupplierName    string          `gorm:"size:256" json:"supplierName"`
	SupplierContact string          `gorm:"size:256" json:"supplierContact"`
	SupplierPhone   string          `gorm:"size:64" json:"supplierPhone"`
	SupplierEmail   string          `gorm:"size:256" json:"supplierEmail"`
	LeadTimeDays    int             `json:"leadTimeDays"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	MinQuantity     int             `gorm:"not null" json:"minQuantity"`
	UsagePerMonth   float64         `json:"usagePerMonth"`
	Plant           string          `gorm:"size:128;index" json:"plant"`
	ImageURL        string          `gorm:"size:1024" json:"imageUrl"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// LowStock reports whether inventory is at or below the reorder threshold.
func (p SparePart) LowStock() bool {
	return p.Quantity <= p.MinQuantity
}
