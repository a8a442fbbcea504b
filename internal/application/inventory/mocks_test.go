package inventory

import (
	"context"

	"github.com/shopdesk/backoffice/internal/domain/catalog"
	"github.com/shopdesk/backoffice/internal/domain/inventory"
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopdesk/backoffice/internal/domain/trade"
	"github.com/stretchr/testify/mock"
)

// MockReceivingSlipRepository is a mock implementation of inventory.ReceivingSlipRepository
type MockReceivingSlipRepository struct {
	mock.Mock
}

func (m *MockReceivingSlipRepository) FindByID(ctx context.Context, id int64) (*inventory.ReceivingSlip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ReceivingSlip), args.Error(1)
}

func (m *MockReceivingSlipRepository) FindByIDForUpdate(ctx context.Context, id int64) (*inventory.ReceivingSlip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ReceivingSlip), args.Error(1)
}

func (m *MockReceivingSlipRepository) ExistsByReferenceNo(ctx context.Context, referenceNo string) (bool, error) {
	args := m.Called(ctx, referenceNo)
	return args.Bool(0), args.Error(1)
}

func (m *MockReceivingSlipRepository) Create(ctx context.Context, slip *inventory.ReceivingSlip) error {
	args := m.Called(ctx, slip)
	return args.Error(0)
}

func (m *MockReceivingSlipRepository) Save(ctx context.Context, slip *inventory.ReceivingSlip) error {
	args := m.Called(ctx, slip)
	return args.Error(0)
}

func (m *MockReceivingSlipRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDispatchSlipRepository is a mock implementation of inventory.DispatchSlipRepository
type MockDispatchSlipRepository struct {
	mock.Mock
}

func (m *MockDispatchSlipRepository) FindByID(ctx context.Context, id int64) (*inventory.DispatchSlip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.DispatchSlip), args.Error(1)
}

func (m *MockDispatchSlipRepository) FindByIDForUpdate(ctx context.Context, id int64) (*inventory.DispatchSlip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.DispatchSlip), args.Error(1)
}

func (m *MockDispatchSlipRepository) Create(ctx context.Context, slip *inventory.DispatchSlip) error {
	args := m.Called(ctx, slip)
	return args.Error(0)
}

func (m *MockDispatchSlipRepository) Save(ctx context.Context, slip *inventory.DispatchSlip) error {
	args := m.Called(ctx, slip)
	return args.Error(0)
}

func (m *MockDispatchSlipRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDispatchSlipRepository) ExistsConfirmed(ctx context.Context, referenceNo string) (bool, error) {
	args := m.Called(ctx, referenceNo)
	return args.Bool(0), args.Error(1)
}

func (m *MockDispatchSlipRepository) DeleteByReference(ctx context.Context, referenceNo string) (int64, error) {
	args := m.Called(ctx, referenceNo)
	return args.Get(0).(int64), args.Error(1)
}

// MockStockLedger is a mock implementation of inventory.StockLedger
type MockStockLedger struct {
	mock.Mock
}

func (m *MockStockLedger) ApplyReceipt(ctx context.Context, sourceRef string, receipts []inventory.StockReceipt) ([]inventory.StockChange, error) {
	args := m.Called(ctx, sourceRef, receipts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockChange), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []int64) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockOutboxRepository is a mock implementation of shared.OutboxRepository
type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) Append(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockOutboxRepository) FindPending(ctx context.Context, limit int) ([]*shared.OutboxEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shared.OutboxEntry), args.Error(1)
}

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id int64) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
