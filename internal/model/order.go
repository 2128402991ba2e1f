package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a customer order. Promocode is kept as a plain string,
// not a foreign key, so deleting a promocode never touches order history.
type Order struct {
	ID            string          `json:"id" gorm:"type:varchar(36);primarykey"`
	CustomerName  string          `json:"customer_name" gorm:"type:varchar(255);not null"`
	CustomerPhone string          `json:"customer_phone" gorm:"type:varchar(50);not null"`
	Subtotal      decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	Discount      decimal.Decimal `json:"discount" gorm:"type:decimal(10,2);default:0"`
	Total         decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	Promocode     string          `json:"promocode,omitempty" gorm:"type:varchar(100)"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a denormalized snapshot of a purchased line. It copies the
// product name, weight label and unit price at purchase time so later
// catalog edits never change order history.
type OrderItem struct {
	ID       uint            `json:"-" gorm:"primarykey"`
	OrderID  string          `json:"-" gorm:"type:varchar(36);index;not null"`
	Name     string          `json:"name" gorm:"type:varchar(255);not null"`
	Weight   string          `json:"weight,omitempty" gorm:"type:varchar(50)"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity int             `json:"quantity" gorm:"not null"`
}
