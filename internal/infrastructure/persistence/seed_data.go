package persistence

import (
	"github.com/sannaclaudia/WebAPP/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CatalogSeed is a complete menu: dishes, size table, ingredients and edges.
type CatalogSeed struct {
	Dishes            []catalog.Dish
	Sizes             []catalog.SizeRule
	Ingredients       []catalog.Ingredient
	Requirements      []catalog.RequirementEdge
	Incompatibilities []catalog.IncompatibilityEdge
}

func portions(n int) *int { return &n }

// DefaultCatalog returns the restaurant's starting menu with explicit IDs.
func DefaultCatalog() CatalogSeed {
	return CatalogSeed{
		Dishes: []catalog.Dish{
			{ID: 1, Name: "pizza"},
			{ID: 2, Name: "pasta"},
			{ID: 3, Name: "salad"},
		},
		Sizes: []catalog.SizeRule{
			{Size: catalog.SizeSmall, BasePrice: decimal.RequireFromString("5.00"), MaxIngredients: 3},
			{Size: catalog.SizeMedium, BasePrice: decimal.RequireFromString("7.00"), MaxIngredients: 5},
			{Size: catalog.SizeLarge, BasePrice: decimal.RequireFromString("9.00"), MaxIngredients: 7},
		},
		Ingredients: []catalog.Ingredient{
			{ID: 1, Name: "mozzarella", Price: decimal.RequireFromString("1.00"), AvailablePortions: portions(3)},
			{ID: 2, Name: "tomatoes", Price: decimal.RequireFromString("0.50"), AvailablePortions: nil},
			{ID: 3, Name: "olives", Price: decimal.RequireFromString("0.70"), AvailablePortions: nil},
			{ID: 4, Name: "eggs", Price: decimal.RequireFromString("1.00"), AvailablePortions: nil},
			{ID: 5, Name: "mushrooms", Price: decimal.RequireFromString("0.80"), AvailablePortions: portions(3)},
			{ID: 6, Name: "ham", Price: decimal.RequireFromString("1.20"), AvailablePortions: portions(2)},
			{ID: 7, Name: "tuna", Price: decimal.RequireFromString("1.50"), AvailablePortions: portions(2)},
			{ID: 8, Name: "anchovies", Price: decimal.RequireFromString("1.50"), AvailablePortions: portions(1)},
			{ID: 9, Name: "parmesan", Price: decimal.RequireFromString("1.20"), AvailablePortions: nil},
			{ID: 10, Name: "carrots", Price: decimal.RequireFromString("0.40"), AvailablePortions: nil},
			{ID: 11, Name: "potatoes", Price: decimal.RequireFromString("0.30"), AvailablePortions: nil},
		},
		Requirements: []catalog.RequirementEdge{
			{IngredientID: 2, RequiredIngredientID: 3}, // tomatoes require olives
			{IngredientID: 9, RequiredIngredientID: 1}, // parmesan requires mozzarella
			{IngredientID: 1, RequiredIngredientID: 2}, // mozzarella requires tomatoes
			{IngredientID: 7, RequiredIngredientID: 3}, // tuna requires olives
		},
		Incompatibilities: []catalog.IncompatibilityEdge{
			{IngredientID: 4, IncompatibleWithID: 5},  // eggs / mushrooms
			{IngredientID: 4, IncompatibleWithID: 2},  // eggs / tomatoes
			{IngredientID: 6, IncompatibleWithID: 5},  // ham / mushrooms
			{IngredientID: 3, IncompatibleWithID: 10}, // olives / carrots
			{IngredientID: 7, IncompatibleWithID: 8},  // tuna / anchovies
		},
	}
}
