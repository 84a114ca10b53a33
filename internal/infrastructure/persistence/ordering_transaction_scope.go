package persistence

import (
	"context"

	appordering "github.com/sannaclaudia/WebAPP/internal/application/ordering"
	"github.com/sannaclaudia/WebAPP/internal/domain/catalog"
	"github.com/sannaclaudia/WebAPP/internal/domain/ordering"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Every repository handed to the callback is bound to the same *gorm.DB
// transaction handle.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction. gorm rolls back when fn
// returns an error or panics, and commits otherwise.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appordering.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) CatalogRepo() catalog.Repository {
	return NewGormCatalogRepository(r.tx)
}

func (r *gormTransactionalRepositories) StockRepo() catalog.StockRepository {
	return NewGormCatalogRepository(r.tx)
}

func (r *gormTransactionalRepositories) OrderRepo() ordering.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

var (
	_ appordering.TransactionScope          = (*GormTransactionScope)(nil)
	_ appordering.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
