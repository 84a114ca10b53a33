package ordering

import (
	"context"

	"github.com/sannaclaudia/WebAPP/internal/domain/catalog"
	"github.com/sannaclaudia/WebAPP/internal/domain/ordering"
)

// TransactionScope runs order submission and cancellation as one unit of work.
// Every repository reached through the callback shares the same database
// transaction, which is committed when fn returns nil and rolled back otherwise.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to the current transaction.
//   - CatalogRepo: reads dishes, size rules, ingredients and the constraint graph.
//   - StockRepo: guarded portion decrements and restores.
//   - OrderRepo: order headers and ingredient lines.
type TransactionalRepositories interface {
	CatalogRepo() catalog.Repository
	StockRepo() catalog.StockRepository
	OrderRepo() ordering.OrderRepository
}

// NoOpTransactionScope hands out plain repositories without a transaction.
// Used by tests with in-memory repositories.
type NoOpTransactionScope struct {
	catalogRepo catalog.Repository
	stockRepo   catalog.StockRepository
	orderRepo   ordering.OrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	catalogRepo catalog.Repository,
	stockRepo catalog.StockRepository,
	orderRepo ordering.OrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		catalogRepo: catalogRepo,
		stockRepo:   stockRepo,
		orderRepo:   orderRepo,
	}
}

// Execute calls fn directly.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) CatalogRepo() catalog.Repository {
	return s.catalogRepo
}

func (s *NoOpTransactionScope) StockRepo() catalog.StockRepository {
	return s.stockRepo
}

func (s *NoOpTransactionScope) OrderRepo() ordering.OrderRepository {
	return s.orderRepo
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
