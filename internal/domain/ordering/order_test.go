package ordering

import (
	"testing"

	"github.com/sannaclaudia/WebAPP/internal/domain/catalog"
	"github.com/sannaclaudia/WebAPP/internal/domain/identity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, used2FA bool) *Order {
	t.Helper()
	lines := []OrderLine{
		{IngredientID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("1.50")},
		{IngredientID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("0.80")},
	}
	order, err := NewOrder(3, 1, catalog.SizeMedium, lines, decimal.RequireFromString("10.80"), used2FA)
	require.NoError(t, err)
	order.ID = 42
	return order
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, OrderStatusConfirmed.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusConfirmed))
	assert.False(t, OrderStatus("shipped").IsValid())
}

func TestNewOrder(t *testing.T) {
	t.Run("creates confirmed order", func(t *testing.T) {
		order := newTestOrder(t, true)
		assert.Equal(t, OrderStatusConfirmed, order.Status)
		assert.True(t, order.Used2FA)
		assert.Equal(t, 3, order.TotalPortions())
		assert.True(t, order.BelongsTo(3))
		assert.False(t, order.BelongsTo(4))
		assert.Equal(t, "10.80", order.TotalPrice.StringFixed(2))
	})

	t.Run("rounds total to cents", func(t *testing.T) {
		order, err := NewOrder(1, 1, catalog.SizeSmall, nil, decimal.RequireFromString("5.005"), false)
		require.NoError(t, err)
		assert.Equal(t, "5.01", order.TotalPrice.StringFixed(2))
	})

	t.Run("rejects invalid size", func(t *testing.T) {
		_, err := NewOrder(1, 1, catalog.Size("Huge"), nil, decimal.Zero, false)
		require.Error(t, err)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewOrder(1, 1, catalog.SizeSmall, []OrderLine{{IngredientID: 1, Quantity: 0}}, decimal.Zero, false)
		require.Error(t, err)
	})

	t.Run("placed event carries the ID", func(t *testing.T) {
		order := newTestOrder(t, false)
		order.MarkPlaced()
		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderPlaced, events[0].EventType())
		assert.Equal(t, uint(42), events[0].AggregateID())
	})
}

func TestOrder_Cancel(t *testing.T) {
	order := newTestOrder(t, false)

	require.NoError(t, order.Cancel())
	assert.Equal(t, OrderStatusCancelled, order.Status)
	assert.NotNil(t, order.CancelledAt)
	require.Len(t, order.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeOrderCancelled, order.GetDomainEvents()[0].EventType())

	err := order.Cancel()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot cancel order in its current state")
}

func TestGroupQuantities(t *testing.T) {
	order, counts := GroupQuantities([]uint{5, 2, 5, 9, 2, 5})
	assert.Equal(t, []uint{5, 2, 9}, order)
	assert.Equal(t, map[uint]int{5: 3, 2: 2, 9: 1}, counts)

	order, counts = GroupQuantities(nil)
	assert.Empty(t, order)
	assert.Empty(t, counts)
}

func TestCancelPolicy_Authorize(t *testing.T) {
	plain := newTestOrder(t, false)
	with2FA := newTestOrder(t, true)

	t.Run("always requires verified second factor", func(t *testing.T) {
		p := CancelPolicyAlways
		assert.NoError(t, p.Authorize(plain, identity.AuthLevelVerified2FA))
		assert.ErrorIs(t, p.Authorize(plain, identity.AuthLevelSkipped2FA), ErrCancelRequires2FA)
		assert.ErrorIs(t, p.Authorize(plain, identity.AuthLevelPending2FA), ErrCancelRequires2FA)
	})

	t.Run("order_2fa lets skipped sessions cancel plain orders only", func(t *testing.T) {
		p := CancelPolicyOrder2FA
		assert.NoError(t, p.Authorize(plain, identity.AuthLevelSkipped2FA))
		assert.ErrorIs(t, p.Authorize(with2FA, identity.AuthLevelSkipped2FA), ErrCancelRequires2FA)
		assert.NoError(t, p.Authorize(with2FA, identity.AuthLevelVerified2FA))
		assert.ErrorIs(t, p.Authorize(plain, identity.AuthLevelPending2FA), ErrCancelRequires2FA)
	})

	t.Run("parse", func(t *testing.T) {
		p, err := ParseCancelPolicy("")
		require.NoError(t, err)
		assert.Equal(t, CancelPolicyAlways, p)
		_, err = ParseCancelPolicy("never")
		assert.Error(t, err)
	})
}
