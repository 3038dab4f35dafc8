package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UncategorizedLabel replaces an empty category in aggregates.
const UncategorizedLabel = "Uncategorized"

// MaxQuantity is the largest stock count accepted for a product.
const MaxQuantity = 1000000

// MaxPrice is the largest unit price accepted for a product.
var MaxPrice = decimal.NewFromInt(10000000)

// Product is a single inventory line.
// AddedOn is written once at creation and never touched by updates.
type Product struct {
	ID       uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string          `json:"name" gorm:"size:255;not null"`
	Category string          `json:"category" gorm:"size:255;index"`
	Quantity int             `json:"quantity" gorm:"not null"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	AddedOn  time.Time       `json:"added_on" gorm:"column:added_on;not null"`
}

func (p *Product) TableName() string {
	return "products"
}

// CategoryLabel returns the category used for grouping.
func (p *Product) CategoryLabel() string {
	if p.Category == "" {
		return UncategorizedLabel
	}
	return p.Category
}

// Value is quantity × price.
func (p *Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// ProductInput carries the user-editable product fields.
type ProductInput struct {
	Name     string
	Category string
	Quantity int
	Price    decimal.Decimal
}
