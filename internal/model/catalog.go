package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category represents a storefront catalog category
type Category struct {
	ID   string `json:"id" gorm:"type:varchar(36);primarykey"`
	Name string `json:"name" gorm:"type:varchar(255);not null"`
	Slug string `json:"slug" gorm:"type:varchar(255);not null"`
}

// Product represents a sellable catalog item with its weight price tiers
type Product struct {
	ID           string          `json:"id" gorm:"type:varchar(36);primarykey"`
	Name         string          `json:"name" gorm:"type:varchar(255);not null"`
	Description  string          `json:"description" gorm:"type:text"`
	CategoryID   *string         `json:"category_id" gorm:"type:varchar(36)"`
	Image        string          `json:"image" gorm:"type:text"`
	BasePrice    decimal.Decimal `json:"base_price" gorm:"type:decimal(10,2);not null"`
	CreatedAt    time.Time       `json:"created_at"`
	Category     *Category       `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	WeightPrices []WeightPrice   `json:"weight_prices" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// WeightPrice is one purchasable weight option of a product.
// SortOrder preserves the admin-supplied tier ordering.
type WeightPrice struct {
	ID        uint            `json:"-" gorm:"primarykey"`
	ProductID string          `json:"-" gorm:"type:varchar(36);index;not null"`
	Weight    string          `json:"weight" gorm:"type:varchar(50);not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	SortOrder int             `json:"-" gorm:"default:0"`
}
