package trade

import (
	"errors"
	"testing"

	"github.com/shopdesk/backoffice/internal/domain/catalog"
	"github.com/shopdesk/backoffice/internal/domain/partner"
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(id int64, price int64) *catalog.Product {
	p := &catalog.Product{Code: "SKU", Name: "Tea", Unit: "box", Price: decimal.NewFromInt(price)}
	p.ID = id
	return p
}

func newTestCustomer() *partner.Customer {
	c := &partner.Customer{Name: "Lan", Email: "lan@example.com", Phone: "0900000000"}
	c.ID = 9
	return c
}

func newTestOrder(method PaymentMethod, status OrderStatus) *Order {
	o := &Order{Status: status, PaymentMethod: method, PaymentStatus: PaymentStatusUnpaid}
	o.ID = 42
	return o
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var de *shared.DomainError
	require.True(t, errors.As(err, &de), "expected domain error, got %v", err)
	return de.Code
}

func TestNewOrder_PricesFromCatalog(t *testing.T) {
	order, err := NewOrder(newTestCustomer(), PaymentMethodCOD, decimal.NewFromInt(15000), []OrderLine{
		{Product: newTestProduct(1, 25000), Quantity: 2},
		{Product: newTestProduct(2, 50000), Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, PaymentStatusUnpaid, order.PaymentStatus)
	assert.Len(t, order.Items, 2)
	assert.True(t, decimal.NewFromInt(100000).Equal(order.Subtotal))
	assert.True(t, decimal.NewFromInt(10000).Equal(order.TaxAmount))
	assert.True(t, decimal.NewFromInt(125000).Equal(order.TotalAmount))
	assert.True(t, order.ItemsSubtotal().Equal(order.Subtotal))
	assert.Equal(t, "Tea", order.Items[0].ProductName)
}

func TestNewOrder_Validation(t *testing.T) {
	line := []OrderLine{{Product: newTestProduct(1, 1000), Quantity: 1}}

	_, err := NewOrder(nil, PaymentMethodCOD, decimal.Zero, line)
	assert.Error(t, err)

	_, err = NewOrder(newTestCustomer(), "CARD", decimal.Zero, line)
	assert.Error(t, err)

	_, err = NewOrder(newTestCustomer(), PaymentMethodQR, decimal.NewFromInt(-1), line)
	assert.Error(t, err)

	_, err = NewOrder(newTestCustomer(), PaymentMethodQR, decimal.Zero, nil)
	assert.Error(t, err)

	_, err = NewOrder(newTestCustomer(), PaymentMethodQR, decimal.Zero, []OrderLine{{Product: newTestProduct(1, 1000), Quantity: 0}})
	assert.Error(t, err)
}

func TestTransitionTo_Guards(t *testing.T) {
	tests := []struct {
		name     string
		method   PaymentMethod
		from     OrderStatus
		to       OrderStatus
		released bool
		wantCode string
	}{
		{"QR cannot be marked paid", PaymentMethodQR, OrderStatusPending, OrderStatusPaid, true, CodePaymentMethodMismatch},
		{"COD must be paid before completion", PaymentMethodCOD, OrderStatusShipping, OrderStatusCompleted, true, CodeCODNotPaid},
		{"completed is terminal", PaymentMethodQR, OrderStatusCompleted, OrderStatusCancelled, true, CodeOrderCompleted},
		{"completed cannot go back to pending", PaymentMethodCOD, OrderStatusCompleted, OrderStatusPending, true, CodeOrderCompleted},
		{"payment guard wins over terminal guard", PaymentMethodQR, OrderStatusCompleted, OrderStatusPaid, true, CodePaymentMethodMismatch},
		{"dispatch gate blocks shipping", PaymentMethodCOD, OrderStatusPending, OrderStatusShipping, false, CodeWarehouseNotConfirmed},
		{"dispatch gate blocks paid", PaymentMethodCOD, OrderStatusPending, OrderStatusPaid, false, CodeWarehouseNotConfirmed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := newTestOrder(tt.method, tt.from)
			err := order.TransitionTo(tt.to, tt.released)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, codeOf(t, err))
			assert.Equal(t, shared.KindConflict, shared.KindOf(err))
			assert.Equal(t, tt.from, order.Status, "status must not change on rejection")
			assert.Empty(t, order.GetDomainEvents())
		})
	}
}

func TestTransitionTo_Accepted(t *testing.T) {
	tests := []struct {
		name     string
		method   PaymentMethod
		from     OrderStatus
		to       OrderStatus
		released bool
		paid     bool
	}{
		{"COD pending to paid", PaymentMethodCOD, OrderStatusPending, OrderStatusPaid, true, true},
		{"COD paid to completed", PaymentMethodCOD, OrderStatusPaid, OrderStatusCompleted, true, true},
		{"QR shipping to completed", PaymentMethodQR, OrderStatusShipping, OrderStatusCompleted, true, true},
		{"QR completed stays completed", PaymentMethodQR, OrderStatusCompleted, OrderStatusCompleted, true, true},
		{"pending to shipping", PaymentMethodQR, OrderStatusPending, OrderStatusShipping, true, false},
		{"cancel without dispatch slip", PaymentMethodCOD, OrderStatusPending, OrderStatusCancelled, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := newTestOrder(tt.method, tt.from)
			require.NoError(t, order.TransitionTo(tt.to, tt.released))
			assert.Equal(t, tt.to, order.Status)
			if tt.paid {
				assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
				assert.NotNil(t, order.PaidAt)
			} else {
				assert.Equal(t, PaymentStatusUnpaid, order.PaymentStatus)
			}

			events := order.GetDomainEvents()
			require.Len(t, events, 1)
			changed, ok := events[0].(*OrderStatusChangedEvent)
			require.True(t, ok)
			assert.Equal(t, tt.from, changed.FromStatus)
			assert.Equal(t, tt.to, changed.ToStatus)
		})
	}
}

func TestNeedsInvoice(t *testing.T) {
	order := newTestOrder(PaymentMethodQR, OrderStatusShipping)
	assert.False(t, order.NeedsInvoice())

	require.NoError(t, order.TransitionTo(OrderStatusCompleted, true))
	assert.True(t, order.NeedsInvoice())

	order.AttachInvoice(5)
	assert.False(t, order.NeedsInvoice())
	assert.True(t, order.HasInvoice())
}

func TestCheckDeletable(t *testing.T) {
	assert.Error(t, newTestOrder(PaymentMethodCOD, OrderStatusPending).CheckDeletable())

	cancelled := newTestOrder(PaymentMethodCOD, OrderStatusCancelled)
	assert.NoError(t, cancelled.CheckDeletable())

	cancelled.AttachInvoice(1)
	err := cancelled.CheckDeletable()
	require.Error(t, err)
	assert.Equal(t, "ORDER_NOT_DELETABLE", codeOf(t, err))
}

func TestSalesDispatchReference(t *testing.T) {
	assert.Equal(t, "ORD-42", SalesDispatchReference(42))

	id, ok := ParseSalesDispatchReference("ORD-42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, ref := range []string{"PRJ-42", "ORD-", "ORD-abc", "ORD--1", "ORD-0"} {
		_, ok := ParseSalesDispatchReference(ref)
		assert.False(t, ok, ref)
	}
}
