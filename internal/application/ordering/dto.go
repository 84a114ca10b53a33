package ordering

import (
	"time"

	"github.com/sannaclaudia/WebAPP/internal/domain/catalog"
	"github.com/sannaclaudia/WebAPP/internal/domain/identity"
	"github.com/sannaclaudia/WebAPP/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// ValidateOrderRequest is a candidate order configuration.
// IngredientIDs may repeat; each repetition is one more portion.
type ValidateOrderRequest struct {
	DishID        uint
	Size          catalog.Size
	IngredientIDs []uint
}

// SubmitOrderRequest places an order for the session's user
type SubmitOrderRequest struct {
	UserID        uint
	DishID        uint
	Size          catalog.Size
	IngredientIDs []uint
	Used2FA       bool
}

func (r SubmitOrderRequest) configuration() ValidateOrderRequest {
	return ValidateOrderRequest{DishID: r.DishID, Size: r.Size, IngredientIDs: r.IngredientIDs}
}

// CancelOrderRequest cancels one of the session user's orders
type CancelOrderRequest struct {
	OrderID   uint
	UserID    uint
	AuthLevel identity.AuthLevel
}

// ValidationResult lists every rule the configuration breaks.
// TotalPrice is only set when the configuration is valid.
type ValidationResult struct {
	Valid      bool
	Errors     []string
	TotalPrice *decimal.Decimal
}

// ValidationResponse is the JSON view of a ValidationResult
type ValidationResponse struct {
	Valid      bool     `json:"valid"`
	Errors     []string `json:"errors"`
	TotalPrice *float64 `json:"total_price,omitempty"`
}

// ToResponse converts the result for the wire
func (r *ValidationResult) ToResponse() ValidationResponse {
	resp := ValidationResponse{Valid: r.Valid, Errors: r.Errors}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	if r.TotalPrice != nil {
		price := PriceValue(*r.TotalPrice)
		resp.TotalPrice = &price
	}
	return resp
}

// OrderIngredientResponse is one ingredient line of an order
type OrderIngredientResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID          uint                      `json:"id"`
	DishID      uint                      `json:"dish_id"`
	DishName    string                    `json:"dish_name"`
	Size        string                    `json:"size"`
	TotalPrice  float64                   `json:"total_price"`
	Status      string                    `json:"status"`
	Used2FA     bool                      `json:"used_2fa"`
	CreatedAt   time.Time                 `json:"created_at"`
	CancelledAt *time.Time                `json:"cancelled_at,omitempty"`
	Ingredients []OrderIngredientResponse `json:"ingredients,omitempty"`
}

// PriceValue renders a decimal amount as a JSON number with cents precision
func PriceValue(amount decimal.Decimal) float64 {
	return catalog.RoundPrice(amount).InexactFloat64()
}

// ToOrderResponse converts an order. Names are resolved from the given
// lookups; withLines controls whether ingredient lines are included.
func ToOrderResponse(o *ordering.Order, dishNames map[uint]string, ingredientNames map[uint]string, withLines bool) OrderResponse {
	resp := OrderResponse{
		ID:          o.ID,
		DishID:      o.DishID,
		DishName:    dishNames[o.DishID],
		Size:        o.Size.String(),
		TotalPrice:  PriceValue(o.TotalPrice),
		Status:      o.Status.String(),
		Used2FA:     o.Used2FA,
		CreatedAt:   o.CreatedAt,
		CancelledAt: o.CancelledAt,
	}
	if withLines {
		resp.Ingredients = make([]OrderIngredientResponse, 0, len(o.Lines))
		for _, l := range o.Lines {
			resp.Ingredients = append(resp.Ingredients, OrderIngredientResponse{
				ID:       l.IngredientID,
				Name:     ingredientNames[l.IngredientID],
				Quantity: l.Quantity,
			})
		}
	}
	return resp
}
