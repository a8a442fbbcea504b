package persistence

import (
	"context"

	appinv "github.com/shopdesk/backoffice/internal/application/inventory"
	apptrade "github.com/shopdesk/backoffice/internal/application/trade"
	"github.com/shopdesk/backoffice/internal/domain/catalog"
	"github.com/shopdesk/backoffice/internal/domain/finance"
	"github.com/shopdesk/backoffice/internal/domain/inventory"
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopdesk/backoffice/internal/domain/trade"
	"github.com/shopdesk/backoffice/internal/infrastructure/telemetry"
	"gorm.io/gorm"
)

// GormOrderTransactionScope implements the order workflow TransactionScope using GORM transactions
type GormOrderTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderTransactionScope creates a new GormOrderTransactionScope.
func NewGormOrderTransactionScope(db *gorm.DB) *GormOrderTransactionScope {
	return &GormOrderTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormOrderTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	ctx, span := telemetry.StartSpan(ctx, "order.transaction")
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
	telemetry.EndSpan(span, err)
	return err
}

// GormInventoryTransactionScope implements the warehouse TransactionScope using GORM transactions
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope.
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	ctx, span := telemetry.StartSpan(ctx, "inventory.transaction")
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
	telemetry.EndSpan(span, err)
	return err
}

// gormTransactionalRepositories hands out repositories bound to one transaction.
// It serves both the order and the warehouse workflows.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Orders() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) Invoices() finance.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r *gormTransactionalRepositories) ReceivingSlips() inventory.ReceivingSlipRepository {
	return NewGormReceivingSlipRepository(r.tx)
}

func (r *gormTransactionalRepositories) DispatchSlips() inventory.DispatchSlipRepository {
	return NewGormDispatchSlipRepository(r.tx)
}

func (r *gormTransactionalRepositories) StockLedger() inventory.StockLedger {
	return NewGormStockLedger(r.tx)
}

func (r *gormTransactionalRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) Outbox() shared.OutboxRepository {
	return NewGormOutboxRepository(r.tx)
}

var (
	_ apptrade.TransactionScope          = (*GormOrderTransactionScope)(nil)
	_ apptrade.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
	_ appinv.TransactionScope            = (*GormInventoryTransactionScope)(nil)
	_ appinv.TransactionalRepositories   = (*gormTransactionalRepositories)(nil)
)
