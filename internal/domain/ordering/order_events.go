package ordering

import (
	"github.com/sannaclaudia/WebAPP/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced    = "OrderPlaced"
	EventTypeOrderCancelled = "OrderCancelled"
	EventTypeOrderRejected  = "OrderRejected"
)

// OrderPlacedEvent is raised after an order and its stock decrements commit
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	UserID     uint            `json:"user_id"`
	Size       string          `json:"size"`
	Portions   int             `json:"portions"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Used2FA    bool            `json:"used_2fa"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		UserID:          o.UserID,
		Size:            o.Size.String(),
		Portions:        o.TotalPortions(),
		TotalPrice:      o.TotalPrice,
		Used2FA:         o.Used2FA,
	}
}

// OrderCancelledEvent is raised after a cancellation restored stock
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	UserID   uint `json:"user_id"`
	Portions int  `json:"portions"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, o.ID),
		UserID:          o.UserID,
		Portions:        o.TotalPortions(),
	}
}

// OrderRejectedEvent is raised when a submission fails validation, either
// up front or because stock ran out before the commit. No order exists, so
// the aggregate ID is zero.
type OrderRejectedEvent struct {
	shared.BaseDomainEvent
	UserID     uint     `json:"user_id"`
	Reasons    []string `json:"reasons"`
	StockRaced bool     `json:"stock_raced"`
}

// NewOrderRejectedEvent creates a new OrderRejectedEvent
func NewOrderRejectedEvent(userID uint, reasons []string, stockRaced bool) *OrderRejectedEvent {
	return &OrderRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderRejected, AggregateTypeOrder, 0),
		UserID:          userID,
		Reasons:         reasons,
		StockRaced:      stockRaced,
	}
}
