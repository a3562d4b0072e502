package persistence

import (
	"context"

	apporder "github.com/eventnexus/backend/internal/application/order"
	"github.com/eventnexus/backend/internal/domain/event"
	"github.com/eventnexus/backend/internal/domain/order"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apporder.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Orders returns the order repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Orders() order.Repository {
	return NewGormOrderRepository(r.tx)
}

// Tickets returns the ticket repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Tickets() event.TicketRepository {
	return NewGormTicketRepository(r.tx)
}

// Packages returns the package repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Packages() event.PackageRepository {
	return NewGormPackageRepository(r.tx)
}

// Revenues returns the revenue repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Revenues() event.RevenueRepository {
	return NewGormRevenueRepository(r.tx)
}

// Sponsors returns the sponsor repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Sponsors() event.SponsorRepository {
	return NewGormSponsorRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ apporder.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ apporder.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
