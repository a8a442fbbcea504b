package finance

import (
	"fmt"
	"time"

	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopdesk/backoffice/internal/domain/shared/valueobject"
	"github.com/shopdesk/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// invoiceCodeLayout is the timestamp part of an invoice code
const invoiceCodeLayout = "20060102150405"

// InvoiceCode derives an invoice code from the issue time and the order id
func InvoiceCode(issuedAt time.Time, orderID int64) string {
	return fmt.Sprintf("INV-%s-%d", issuedAt.UTC().Format(invoiceCodeLayout), orderID)
}

// GenerateInvoice builds the invoice of a completed order.
//
//	subtotal    = Σ unitPrice × quantity
//	discount    = 0
//	tax         = VAT(subtotal - discount)
//	shippingFee = max(order total - (subtotal - discount + tax), 0)
//	total       = subtotal - discount + tax + shippingFee
//
// Shipping is the residual of the order total, so the invoice reconciles with what the customer was charged.
func GenerateInvoice(order *trade.Order, issuedAt time.Time) (*Invoice, error) {
	if order == nil {
		return nil, shared.NewValidationError("INVALID_ORDER", "Invoice requires an order")
	}
	if order.ID == 0 {
		return nil, shared.NewValidationError("INVALID_ORDER", "Invoice requires a persisted order")
	}
	if order.Status != trade.OrderStatusCompleted {
		return nil, shared.NewConflictError("ORDER_NOT_COMPLETED",
			"Order %d is %s, invoices are only issued for %s orders", order.ID, order.Status, trade.OrderStatusCompleted)
	}
	if order.HasInvoice() {
		return nil, shared.NewConflictError("INVOICE_EXISTS", "Order %d already has an invoice", order.ID)
	}

	lines := make([]InvoiceLine, 0, len(order.Items))
	subtotal := decimal.Zero
	for _, item := range order.Items {
		lineTotal := valueobject.LineTotal(item.UnitPrice, item.Quantity)
		lines = append(lines, InvoiceLine{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	discount := decimal.Zero
	tax := valueobject.VAT(subtotal.Sub(discount))
	beforeShipping := subtotal.Sub(discount).Add(tax)
	shipping := valueobject.ClampZero(order.TotalAmount.Sub(beforeShipping))

	invoice := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              InvoiceCode(issuedAt, order.ID),
		OrderID:           order.ID,
		CustomerID:        order.CustomerID,
		Subtotal:          subtotal,
		Discount:          discount,
		Tax:               tax,
		ShippingFee:       shipping,
		Total:             beforeShipping.Add(shipping),
		Status:            InvoiceStatusPaid,
		IssuedAt:          issuedAt,
		Lines:             lines,
	}
	if c := order.Customer; c != nil {
		invoice.CustomerName = c.Name
		invoice.CustomerEmail = c.Email
		invoice.CustomerPhone = c.Phone
	}

	return invoice, nil
}
