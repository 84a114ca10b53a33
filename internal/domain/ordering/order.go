package ordering

import (
	"time"

	"github.com/sannaclaudia/WebAPP/internal/domain/catalog"
	"github.com/sannaclaudia/WebAPP/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusConfirmed, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusConfirmed:
		return target == OrderStatusCancelled
	case OrderStatusCancelled:
		return false
	}
	return false
}

// OrderLine is one distinct ingredient of an order and how many portions
// of it were taken. UnitPrice is frozen at submission time.
type OrderLine struct {
	ID           uint            `gorm:"primaryKey;autoIncrement"`
	OrderID      uint            `gorm:"not null;index"`
	IngredientID uint            `gorm:"not null;index"`
	Quantity     int             `gorm:"not null;check:quantity >= 1"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// Order is the aggregate root for a customer's configured dish.
// Orders are never deleted; cancellation is a status transition.
type Order struct {
	shared.BaseAggregateRoot
	UserID      uint            `gorm:"not null;index"`
	DishID      uint            `gorm:"not null"`
	Size        catalog.Size    `gorm:"type:varchar(10);not null"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;default:'confirmed'"`
	Used2FA     bool            `gorm:"column:used_2fa;not null;default:false"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CancelledAt *time.Time
	Lines       []OrderLine `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a confirmed order. Quantities must already be grouped
// per ingredient.
func NewOrder(userID, dishID uint, size catalog.Size, lines []OrderLine, total decimal.Decimal, used2FA bool) (*Order, error) {
	if userID == 0 {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if dishID == 0 {
		return nil, shared.NewDomainError("INVALID_DISH", "Dish ID cannot be empty")
	}
	if !size.IsValid() {
		return nil, shared.NewDomainError("INVALID_SIZE", "Invalid size selected")
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
		}
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		DishID:            dishID,
		Size:              size,
		Status:            OrderStatusConfirmed,
		Used2FA:           used2FA,
		TotalPrice:        catalog.RoundPrice(total),
		Lines:             lines,
	}, nil
}

// MarkPlaced records the OrderPlaced event once the order has an ID.
func (o *Order) MarkPlaced() {
	o.AddDomainEvent(NewOrderPlacedEvent(o))
}

// BelongsTo reports whether the order was placed by userID
func (o *Order) BelongsTo(userID uint) bool {
	return o.UserID == userID
}

// IsConfirmed reports whether the order still holds its stock
func (o *Order) IsConfirmed() bool {
	return o.Status == OrderStatusConfirmed
}

// TotalPortions returns the number of ingredient portions in the order
func (o *Order) TotalPortions() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}

// Cancel moves a confirmed order to cancelled
func (o *Order) Cancel() error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel order in its current state")
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now

	o.AddDomainEvent(NewOrderCancelledEvent(o))
	return nil
}

// GroupQuantities folds a list of repeated IDs into per-ID counts.
// The returned order slice holds each distinct ID once, in the order of
// first appearance.
func GroupQuantities(ids []uint) (order []uint, counts map[uint]int) {
	counts = make(map[uint]int, len(ids))
	for _, id := range ids {
		if _, seen := counts[id]; !seen {
			order = append(order, id)
		}
		counts[id]++
	}
	return order, counts
}
