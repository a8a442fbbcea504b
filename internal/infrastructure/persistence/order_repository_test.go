package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopdesk/backoffice/internal/domain/finance"
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopdesk/backoffice/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func placeOrder(t *testing.T, db *gorm.DB, method trade.PaymentMethod) *trade.Order {
	t.Helper()
	customer := seedCustomer(t, db)
	a := seedProduct(t, db, "SP-"+string(method)+"-1", "100000", 10)
	b := seedProduct(t, db, "SP-"+string(method)+"-2", "25000", 10)

	order, err := trade.NewOrder(customer, method, decimalFrom("30000"), []trade.OrderLine{
		{Product: a, Quantity: 2},
		{Product: b, Quantity: 1},
	})
	require.NoError(t, err)
	require.NoError(t, NewGormOrderRepository(db).Create(context.Background(), order))
	return order
}

func TestGormOrderRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	order := placeOrder(t, db, trade.PaymentMethodCOD)

	require.NotZero(t, order.ID)
	for _, item := range order.Items {
		assert.NotZero(t, item.ID)
		assert.Equal(t, order.ID, item.OrderID)
	}

	got, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusPending, got.Status)
	assert.Equal(t, trade.PaymentStatusUnpaid, got.PaymentStatus)
	assert.True(t, order.TotalAmount.Equal(got.TotalAmount))
	require.Len(t, got.Items, 2)
	assert.Equal(t, order.Items[0].ID, got.Items[0].ID)
	require.NotNil(t, got.Customer)
	assert.Equal(t, "Lan Nguyen", got.Customer.Name)
	assert.Nil(t, got.InvoiceID)
}

func TestGormOrderRepository_SaveWritesStatusAndPayment(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	order := placeOrder(t, db, trade.PaymentMethodCOD)

	require.NoError(t, order.TransitionTo(trade.OrderStatusPaid, true))
	require.NoError(t, repo.Save(context.Background(), order))

	got, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusPaid, got.Status)
	assert.Equal(t, trade.PaymentStatusPaid, got.PaymentStatus)
	assert.NotNil(t, got.PaidAt)

	order.ID = 9999
	assert.True(t, errors.Is(repo.Save(context.Background(), order), shared.ErrNotFound))
}

func TestGormOrderRepository_SoftDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	order := placeOrder(t, db, trade.PaymentMethodQR)

	require.NoError(t, repo.SoftDelete(context.Background(), order.ID))

	_, err := repo.FindByID(context.Background(), order.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	assert.True(t, errors.Is(repo.SoftDelete(context.Background(), order.ID), shared.ErrNotFound))
}

func TestGormInvoiceRepository_OneInvoicePerOrder(t *testing.T) {
	db := newTestDB(t)
	orders := NewGormOrderRepository(db)
	invoices := NewGormInvoiceRepository(db)
	ctx := context.Background()

	order := placeOrder(t, db, trade.PaymentMethodQR)
	require.NoError(t, order.TransitionTo(trade.OrderStatusCompleted, true))

	inv, err := finance.GenerateInvoice(order, time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, invoices.Create(ctx, inv))
	require.NotZero(t, inv.ID)

	stored, err := invoices.FindByOrderID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.Code, stored.Code)
	assert.Len(t, stored.Lines, 2)
	assert.True(t, inv.Total.Equal(stored.Total))

	linked, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.InvoiceID)
	assert.Equal(t, inv.ID, *linked.InvoiceID)

	again, err := finance.GenerateInvoice(order, time.Date(2026, 6, 2, 9, 5, 0, 0, time.UTC))
	require.NoError(t, err)
	err = invoices.Create(ctx, again)
	var de *shared.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "INVOICE_EXISTS", de.Code)
	assert.Equal(t, shared.KindConflict, de.Kind)
}

func TestGormInvoiceRepository_FindByOrderID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := NewGormInvoiceRepository(db).FindByOrderID(context.Background(), 1)

	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
