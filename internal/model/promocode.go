package model

import "github.com/shopspring/decimal"

// Discount types accepted for a promocode
const (
	DiscountTypePercent = "percent"
	DiscountTypeFixed   = "fixed"
)

// Promocode represents a discount code with a bounded number of uses
type Promocode struct {
	ID            string          `json:"id" gorm:"type:varchar(36);primarykey"`
	Code          string          `json:"code" gorm:"type:varchar(100);unique;not null"`
	DiscountType  string          `json:"discount_type" gorm:"type:varchar(10);not null"`
	DiscountValue decimal.Decimal `json:"discount_value" gorm:"type:decimal(10,2);not null"`
	MaxUses       int             `json:"max_uses" gorm:"not null"`
	CurrentUses   int             `json:"current_uses" gorm:"default:0"`
	IsActive      bool            `json:"is_active" gorm:"default:true"`
}
