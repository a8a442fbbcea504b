package inventory

import (
	"context"

	"github.com/shopdesk/backoffice/internal/domain/catalog"
	"github.com/shopdesk/backoffice/internal/domain/inventory"
	"github.com/shopdesk/backoffice/internal/domain/shared"
)

// TransactionScope provides transactional access to warehouse repositories.
// When a function is executed within a transaction scope, all repository operations
// will be part of the same database transaction and will be committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to warehouse repositories within a transaction.
//
// Aggregate boundary notes:
//   - ReceivingSlips / DispatchSlips: slip aggregates with their items.
//   - StockLedger: the only writer of product on-hand quantity. It locks product rows
//     until the surrounding transaction ends.
//   - Products: read-only catalog lookups used to validate slip lines.
//   - Outbox: receives the domain events raised in the transaction.
type TransactionalRepositories interface {
	ReceivingSlips() inventory.ReceivingSlipRepository
	DispatchSlips() inventory.DispatchSlipRepository
	StockLedger() inventory.StockLedger
	Products() catalog.ProductRepository
	Outbox() shared.OutboxRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	receivingSlips inventory.ReceivingSlipRepository
	dispatchSlips  inventory.DispatchSlipRepository
	ledger         inventory.StockLedger
	products       catalog.ProductRepository
	outbox         shared.OutboxRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	receivingSlips inventory.ReceivingSlipRepository,
	dispatchSlips inventory.DispatchSlipRepository,
	ledger inventory.StockLedger,
	products catalog.ProductRepository,
	outbox shared.OutboxRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		receivingSlips: receivingSlips,
		dispatchSlips:  dispatchSlips,
		ledger:         ledger,
		products:       products,
		outbox:         outbox,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ReceivingSlips returns the receiving slip repository.
func (s *NoOpTransactionScope) ReceivingSlips() inventory.ReceivingSlipRepository {
	return s.receivingSlips
}

// DispatchSlips returns the dispatch slip repository.
func (s *NoOpTransactionScope) DispatchSlips() inventory.DispatchSlipRepository {
	return s.dispatchSlips
}

// StockLedger returns the stock ledger.
func (s *NoOpTransactionScope) StockLedger() inventory.StockLedger {
	return s.ledger
}

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.products
}

// Outbox returns the outbox repository.
func (s *NoOpTransactionScope) Outbox() shared.OutboxRepository {
	return s.outbox
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
