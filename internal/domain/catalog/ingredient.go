package catalog

import (
	"github.com/shopspring/decimal"
)

// Ingredient is an add-on with a unit price and an optional stock counter.
// A nil AvailablePortions means the ingredient is unlimited.
type Ingredient struct {
	ID                uint            `gorm:"primaryKey;autoIncrement"`
	Name              string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Price             decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	AvailablePortions *int            `gorm:"check:available_portions >= 0"`
}

// TableName returns the table name for GORM
func (Ingredient) TableName() string {
	return "ingredients"
}

// IsUnlimited reports whether the ingredient has no stock limit
func (i *Ingredient) IsUnlimited() bool {
	return i.AvailablePortions == nil
}

// Available returns the remaining portions. Only meaningful when the
// ingredient is limited.
func (i *Ingredient) Available() int {
	if i.AvailablePortions == nil {
		return 0
	}
	return *i.AvailablePortions
}

// CanServe reports whether quantity portions can be taken from stock
func (i *Ingredient) CanServe(quantity int) bool {
	return i.IsUnlimited() || *i.AvailablePortions >= quantity
}

// LineCost returns price × quantity
func (i *Ingredient) LineCost(quantity int) decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(quantity)))
}

// RequirementEdge states that selecting IngredientID forces
// RequiredIngredientID to be selected too. Edges are directed.
type RequirementEdge struct {
	IngredientID         uint `gorm:"primaryKey"`
	RequiredIngredientID uint `gorm:"primaryKey"`
}

// TableName returns the table name for GORM
func (RequirementEdge) TableName() string {
	return "ingredient_requirements"
}

// IncompatibilityEdge forbids selecting both ingredients in one order.
// Each pair is stored once; the relation is symmetric.
type IncompatibilityEdge struct {
	IngredientID       uint `gorm:"primaryKey"`
	IncompatibleWithID uint `gorm:"primaryKey"`
}

// TableName returns the table name for GORM
func (IncompatibilityEdge) TableName() string {
	return "ingredient_incompatibilities"
}
