package catalog

// DishResponse represents a dish in API responses
type DishResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// IngredientRef names a related ingredient
type IngredientRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// IngredientResponse represents an ingredient with its constraints.
// AvailablePortions is null for unlimited ingredients.
type IngredientResponse struct {
	ID                uint            `json:"id"`
	Name              string          `json:"name"`
	Price             float64         `json:"price"`
	AvailablePortions *int            `json:"available_portions"`
	Requires          []IngredientRef `json:"requires"`
	IncompatibleWith  []IngredientRef `json:"incompatible_with"`
}

// PricingResponse is the size table keyed by size name
type PricingResponse struct {
	Prices         map[string]float64 `json:"prices"`
	MaxIngredients map[string]int     `json:"maxIngredients"`
}
