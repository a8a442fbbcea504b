package persistence

import (
	"context"
	"errors"
	"math"
	"testing"

	appinv "github.com/shopdesk/backoffice/internal/application/inventory"
	apptrade "github.com/shopdesk/backoffice/internal/application/trade"
	"github.com/shopdesk/backoffice/internal/domain/inventory"
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopdesk/backoffice/internal/domain/trade"
	"github.com/shopdesk/backoffice/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type services struct {
	orders    *apptrade.OrderService
	receiving *appinv.ReceivingSlipService
	dispatch  *appinv.DispatchSlipService
}

func newServices(db *gorm.DB) services {
	log := zap.NewNop()
	orders := NewGormOrderRepository(db)
	return services{
		orders: apptrade.NewOrderService(
			NewGormOrderTransactionScope(db),
			orders,
			NewGormInvoiceRepository(db),
			NewGormProductRepository(db),
			NewGormCustomerRepository(db),
			log,
		),
		receiving: appinv.NewReceivingSlipService(NewGormInventoryTransactionScope(db), NewGormReceivingSlipRepository(db), log),
		dispatch:  appinv.NewDispatchSlipService(NewGormInventoryTransactionScope(db), NewGormDispatchSlipRepository(db), orders, log),
	}
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestInventoryTransactionScope_RollsBack(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "SP-TX", "1000", 1)

	boom := errors.New("boom")
	err := NewGormInventoryTransactionScope(db).Execute(context.Background(), func(repos appinv.TransactionalRepositories) error {
		if _, err := repos.StockLedger().ApplyReceipt(context.Background(), "PN-TX", []inventory.StockReceipt{{ProductID: p.ID, Quantity: 9}}); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(1), stockOf(t, db, p.ID))
	assert.Zero(t, countRows(t, db, &models.StockMovementModel{}))
}

func TestReceivingWorkflow(t *testing.T) {
	db := newTestDB(t)
	svc := newServices(db)
	ctx := context.Background()
	a := seedProduct(t, db, "SP-W1", "1000", 2)
	b := seedProduct(t, db, "SP-W2", "1000", 0)

	created, err := svc.receiving.Create(ctx, appinv.CreateReceivingSlipRequest{
		ReferenceNo: "PN-0100",
		Supplier:    "Minh Phat",
		Items: []appinv.ReceivingSlipItemInput{
			{ProductID: &a.ID, Quantity: 3, UnitPrice: decimalFrom("5000")},
			{Description: "unknown carton", Quantity: 4, UnitPrice: decimalFrom("2000")},
		},
	})
	require.NoError(t, err)

	_, err = svc.receiving.Confirm(ctx, created.ID)
	assert.Equal(t, inventory.CodeItemProductMissing, domainCode(err))
	assert.Equal(t, int64(2), stockOf(t, db, a.ID))

	_, err = svc.receiving.UpdateItem(ctx, created.ID, created.Items[1].ID, appinv.ReceivingSlipItemInput{
		ProductID: &b.ID, Quantity: 4, UnitPrice: decimalFrom("2000"),
	})
	require.NoError(t, err)

	confirmed, err := svc.receiving.Confirm(ctx, created.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []appinv.AffectedProduct{
		{ProductID: a.ID, AddedQty: 3},
		{ProductID: b.ID, AddedQty: 4},
	}, confirmed.AffectedProducts)
	assert.Equal(t, int64(5), stockOf(t, db, a.ID))
	assert.Equal(t, int64(4), stockOf(t, db, b.ID))
	assert.Equal(t, int64(1), countRows(t, db, &models.OutboxEntryModel{}))

	_, err = svc.receiving.Confirm(ctx, created.ID)
	assert.Equal(t, inventory.CodeSlipNotDraft, domainCode(err))
	assert.Equal(t, int64(5), stockOf(t, db, a.ID))

	_, err = svc.receiving.Create(ctx, appinv.CreateReceivingSlipRequest{ReferenceNo: "PN-0100", Supplier: "Again"})
	assert.Equal(t, inventory.CodeDuplicateReference, domainCode(err))
}

func TestReceivingWorkflow_QuantityOverflowKeepsStock(t *testing.T) {
	db := newTestDB(t)
	svc := newServices(db)
	ctx := context.Background()
	p := seedProduct(t, db, "SP-W3", "1000", 50)

	created, err := svc.receiving.Create(ctx, appinv.CreateReceivingSlipRequest{
		ReferenceNo: "PN-0101",
		Supplier:    "Minh Phat",
		Items: []appinv.ReceivingSlipItemInput{
			{ProductID: &p.ID, Quantity: 1, UnitPrice: decimalFrom("1000")},
			{ProductID: &p.ID, Quantity: 1, UnitPrice: decimalFrom("1000")},
		},
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.ReceivingSlipItemModel{}).
		Where("slip_id = ?", created.ID).
		Update("quantity", int64(math.MaxInt64/2+1)).Error)

	_, err = svc.receiving.Confirm(ctx, created.ID)

	assert.Equal(t, inventory.CodeInvalidQuantity, domainCode(err))
	assert.Equal(t, shared.KindValidation, shared.KindOf(err))
	assert.Equal(t, int64(50), stockOf(t, db, p.ID))
	assert.Zero(t, countRows(t, db, &models.StockMovementModel{}))
	assert.Zero(t, countRows(t, db, &models.OutboxEntryModel{}))
	slip, err := svc.receiving.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(inventory.SlipStatusDraft), slip.Status)
}

func TestOrderWorkflow(t *testing.T) {
	db := newTestDB(t)
	svc := newServices(db)
	ctx := context.Background()
	customer := seedCustomer(t, db)
	p := seedProduct(t, db, "SP-O1", "100000", 10)

	order, err := svc.orders.PlaceOrder(ctx, apptrade.PlaceOrderRequest{
		CustomerID:    customer.ID,
		PaymentMethod: "COD",
		ShippingFee:   decimalFrom("30000"),
		Items:         []apptrade.PlaceOrderItemInput{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pending", order.Status)

	_, err = svc.orders.ChangeStatus(ctx, order.ID, apptrade.ChangeOrderStatusRequest{Status: "Đang giao"})
	assert.Equal(t, trade.CodeWarehouseNotConfirmed, domainCode(err))

	slip, err := svc.dispatch.Create(ctx, appinv.CreateDispatchSlipRequest{
		Kind:    "Sales",
		OrderID: &order.ID,
		Items:   []appinv.DispatchSlipItemInput{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, trade.SalesDispatchReference(order.ID), slip.ReferenceNo)
	_, err = svc.dispatch.Confirm(ctx, slip.ID)
	require.NoError(t, err)

	_, err = svc.orders.ChangeStatus(ctx, order.ID, apptrade.ChangeOrderStatusRequest{Status: "completed"})
	assert.Equal(t, trade.CodeCODNotPaid, domainCode(err))

	paid, err := svc.orders.ChangeStatus(ctx, order.ID, apptrade.ChangeOrderStatusRequest{Status: "đã thanh toán"})
	require.NoError(t, err)
	assert.Equal(t, "Paid", paid.Status)
	assert.Equal(t, "Paid", paid.PaymentStatus)
	assert.Nil(t, paid.Invoice)

	done, err := svc.orders.ChangeStatus(ctx, order.ID, apptrade.ChangeOrderStatusRequest{Status: "Hoàn thành"})
	require.NoError(t, err)
	require.NotNil(t, done.Invoice)

	stored, err := svc.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Completed", stored.Status)
	require.NotNil(t, stored.InvoiceID)
	assert.Equal(t, done.Invoice.ID, *stored.InvoiceID)
	assert.Equal(t, int64(1), countRows(t, db, &models.InvoiceModel{}))

	_, err = svc.orders.ChangeStatus(ctx, order.ID, apptrade.ChangeOrderStatusRequest{Status: "Cancelled"})
	assert.Equal(t, trade.CodeOrderCompleted, domainCode(err))
	assert.Equal(t, int64(1), countRows(t, db, &models.InvoiceModel{}))
}

func TestOrderDeletePurgesDispatchSlips(t *testing.T) {
	db := newTestDB(t)
	svc := newServices(db)
	ctx := context.Background()
	customer := seedCustomer(t, db)
	p := seedProduct(t, db, "SP-O2", "50000", 10)

	order, err := svc.orders.PlaceOrder(ctx, apptrade.PlaceOrderRequest{
		CustomerID:    customer.ID,
		PaymentMethod: "QR",
		Items:         []apptrade.PlaceOrderItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = svc.dispatch.Create(ctx, appinv.CreateDispatchSlipRequest{
		Kind:    "Sales",
		OrderID: &order.ID,
		Items:   []appinv.DispatchSlipItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	err = svc.orders.Delete(ctx, order.ID)
	assert.Equal(t, "ORDER_NOT_DELETABLE", domainCode(err))

	_, err = svc.orders.ChangeStatus(ctx, order.ID, apptrade.ChangeOrderStatusRequest{Status: "huỷ"})
	require.NoError(t, err)
	require.NoError(t, svc.orders.Delete(ctx, order.ID))

	assert.Zero(t, countRows(t, db, &models.DispatchSlipModel{}))
	_, err = svc.orders.GetByID(ctx, order.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func domainCode(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
