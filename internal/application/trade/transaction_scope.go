package trade

import (
	"context"

	"github.com/shopdesk/backoffice/internal/domain/finance"
	"github.com/shopdesk/backoffice/internal/domain/inventory"
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopdesk/backoffice/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories an order workflow touches.
// All repository operations inside Execute share one database transaction and are
// committed or rolled back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to repositories within a transaction.
//
// Aggregate boundary notes:
//   - Orders: the Order aggregate root with its items.
//   - Invoices: written once, when an order completes.
//   - DispatchSlips: read for the warehouse release gate and purged on order deletion.
//   - Outbox: receives the domain events raised in the transaction.
type TransactionalRepositories interface {
	Orders() trade.OrderRepository
	Invoices() finance.InvoiceRepository
	DispatchSlips() inventory.DispatchSlipRepository
	Outbox() shared.OutboxRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	orders        trade.OrderRepository
	invoices      finance.InvoiceRepository
	dispatchSlips inventory.DispatchSlipRepository
	outbox        shared.OutboxRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orders trade.OrderRepository,
	invoices finance.InvoiceRepository,
	dispatchSlips inventory.DispatchSlipRepository,
	outbox shared.OutboxRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orders:        orders,
		invoices:      invoices,
		dispatchSlips: dispatchSlips,
		outbox:        outbox,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the order repository.
func (s *NoOpTransactionScope) Orders() trade.OrderRepository { return s.orders }

// Invoices returns the invoice repository.
func (s *NoOpTransactionScope) Invoices() finance.InvoiceRepository { return s.invoices }

// DispatchSlips returns the dispatch slip repository.
func (s *NoOpTransactionScope) DispatchSlips() inventory.DispatchSlipRepository {
	return s.dispatchSlips
}

// Outbox returns the outbox repository.
func (s *NoOpTransactionScope) Outbox() shared.OutboxRepository { return s.outbox }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
