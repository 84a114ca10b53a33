package catalog

import (
	"github.com/shopspring/decimal"
)

// Size is the portion size of an order
type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

// AllSizes lists every size in menu order.
var AllSizes = []Size{SizeSmall, SizeMedium, SizeLarge}

// IsValid checks if the size is one of the enumerated sizes
func (s Size) IsValid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// String returns the string representation
func (s Size) String() string {
	return string(s)
}

// SizeRule maps a size to its base price and the maximum number of
// ingredient portions an order of that size may carry.
type SizeRule struct {
	Size           Size            `gorm:"type:varchar(10);primaryKey"`
	BasePrice      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	MaxIngredients int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SizeRule) TableName() string {
	return "size_rules"
}

// Allows reports whether count ingredient portions fit within the rule.
func (r SizeRule) Allows(count int) bool {
	return count <= r.MaxIngredients
}

// DishSizePrice overrides the flat size base price for one dish.
type DishSizePrice struct {
	DishID    uint            `gorm:"primaryKey"`
	Size      Size            `gorm:"type:varchar(10);primaryKey"`
	BasePrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName returns the table name for GORM
func (DishSizePrice) TableName() string {
	return "dish_size_prices"
}

// RoundPrice rounds an amount to the currency's minor unit (cents).
func RoundPrice(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
