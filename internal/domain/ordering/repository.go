package ordering

import "context"

// OrderRepository defines persistence for the Order aggregate
type OrderRepository interface {
	// Create inserts the order header and its lines
	Create(ctx context.Context, order *Order) error

	// FindByID finds an order with its lines, or shared.ErrNotFound
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByUser returns the user's orders, newest first, with their lines
	FindByUser(ctx context.Context, userID uint) ([]Order, error)

	// MarkCancelled persists a cancellation. The write only applies while
	// the stored order is still confirmed; otherwise it returns
	// shared.ErrInvalidState.
	MarkCancelled(ctx context.Context, order *Order) error
}
