package order

import (
	"context"

	"github.com/eventnexus/backend/internal/domain/event"
	"github.com/eventnexus/backend/internal/domain/order"
)

// TransactionScope provides transactional access to the repositories the
// order flow touches. Every multi-step read-modify-write over pool counters
// and order status runs inside one Execute call so that a failure partway
// through rolls back the whole unit.
type TransactionScope interface {
	// Execute runs fn within a database transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes repositories bound to the same
// underlying transaction.
type TransactionalRepositories interface {
	Orders() order.Repository
	Tickets() event.TicketRepository
	Packages() event.PackageRepository
	Revenues() event.RevenueRepository
	Sponsors() event.SponsorRepository
}
