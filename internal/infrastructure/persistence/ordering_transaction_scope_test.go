package persistence

import (
	"context"
	"errors"
	"testing"

	appordering "github.com/sannaclaudia/WebAPP/internal/application/ordering"
	"github.com/sannaclaudia/WebAPP/internal/domain/ordering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTransactionScope(t *testing.T) {
	ctx := context.Background()

	t.Run("commit keeps every write", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormTransactionScope(db)

		err := scope.Execute(ctx, func(repos appordering.TransactionalRepositories) error {
			if err := repos.StockRepo().DecrementPortions(ctx, mozzarellaID, 1); err != nil {
				return err
			}
			return repos.OrderRepo().Create(ctx, newTestOrder(t, 1))
		})
		require.NoError(t, err)

		assert.Equal(t, 2, *stockOf(t, NewGormCatalogRepository(db), mozzarellaID))
		orders, err := NewGormOrderRepository(db).FindByUser(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("error rolls back every write", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormTransactionScope(db)
		boom := errors.New("boom")

		err := scope.Execute(ctx, func(repos appordering.TransactionalRepositories) error {
			require.NoError(t, repos.StockRepo().DecrementPortions(ctx, mozzarellaID, 2))
			require.NoError(t, repos.OrderRepo().Create(ctx, newTestOrder(t, 1)))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		assert.Equal(t, 3, *stockOf(t, NewGormCatalogRepository(db), mozzarellaID))
		var count int64
		require.NoError(t, db.Model(&ordering.Order{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("panic rolls back", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormTransactionScope(db)

		assert.Panics(t, func() {
			_ = scope.Execute(ctx, func(repos appordering.TransactionalRepositories) error {
				_ = repos.StockRepo().DecrementPortions(ctx, mozzarellaID, 3)
				panic("fail mid-transaction")
			})
		})

		assert.Equal(t, 3, *stockOf(t, NewGormCatalogRepository(db), mozzarellaID))
	})

	t.Run("reads see the transaction's own writes", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormTransactionScope(db)

		err := scope.Execute(ctx, func(repos appordering.TransactionalRepositories) error {
			require.NoError(t, repos.StockRepo().DecrementPortions(ctx, anchoviesID, 1))
			ings, err := repos.CatalogRepo().FindIngredientsByIDs(ctx, []uint{anchoviesID})
			require.NoError(t, err)
			require.Len(t, ings, 1)
			assert.Equal(t, 0, ings[0].Available())
			return nil
		})
		require.NoError(t, err)
	})
}
