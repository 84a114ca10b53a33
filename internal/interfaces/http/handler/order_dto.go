package handler

// ValidateOrderRequest is the body of POST /api/validate-order.
// Dish and size are checked by the order validator so that a missing or
// unknown value is reported together with the other broken rules.
type ValidateOrderRequest struct {
	DishID        uint   `json:"dish_id"`
	Size          string `json:"size" binding:"max=20"`
	IngredientIDs []uint `json:"ingredient_ids" binding:"omitempty,max=100,dive,min=1"`
}

// SubmitOrderRequest is the body of POST /api/orders
type SubmitOrderRequest struct {
	DishID      uint   `json:"dish_id" binding:"required,min=1"`
	Size        string `json:"size" binding:"required,max=20"`
	Ingredients []uint `json:"ingredients" binding:"omitempty,max=100,dive,min=1"`
}
