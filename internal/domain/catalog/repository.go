package catalog

import "context"

// Repository provides read access to the catalog: dishes, sizes,
// ingredients and the constraint edges between them.
type Repository interface {
	// ListDishes returns all dishes ordered by name
	ListDishes(ctx context.Context) ([]Dish, error)

	// FindDish finds a dish by ID, returning shared.ErrNotFound if missing
	FindDish(ctx context.Context, id uint) (*Dish, error)

	// ListSizeRules returns the size table in menu order
	ListSizeRules(ctx context.Context) ([]SizeRule, error)

	// FindSizeRule returns the rule for size, or shared.ErrNotFound
	FindSizeRule(ctx context.Context, size Size) (*SizeRule, error)

	// FindDishSizePrice returns a dish-specific base price override, or shared.ErrNotFound
	FindDishSizePrice(ctx context.Context, dishID uint, size Size) (*DishSizePrice, error)

	// ListIngredients returns all ingredients ordered by name
	ListIngredients(ctx context.Context) ([]Ingredient, error)

	// FindIngredientsByIDs returns the ingredients that exist among ids.
	// Unknown IDs are silently absent from the result.
	FindIngredientsByIDs(ctx context.Context, ids []uint) ([]Ingredient, error)

	// LoadConstraintGraph builds the requirement/incompatibility graph
	LoadConstraintGraph(ctx context.Context) (*ConstraintGraph, error)
}

// StockRepository mutates ingredient availability counters.
// Implementations must apply each change as a single conditional write.
type StockRepository interface {
	// DecrementPortions takes quantity portions from a limited ingredient.
	// It returns shared.ErrStockConflict when fewer than quantity portions
	// remain. Unlimited ingredients are left untouched.
	DecrementPortions(ctx context.Context, ingredientID uint, quantity int) error

	// RestorePortions gives quantity portions back to a limited ingredient.
	// Unlimited ingredients are left untouched.
	RestorePortions(ctx context.Context, ingredientID uint, quantity int) error
}
