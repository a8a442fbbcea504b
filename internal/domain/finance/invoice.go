package finance

import (
	"context"
	"time"

	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the settlement state of an invoice
type InvoiceStatus string

// Invoices are only materialized once the order is settled
const InvoiceStatusPaid InvoiceStatus = "Paid"

// InvoiceLine is an immutable snapshot of an order line
type InvoiceLine struct {
	ID          int64
	InvoiceID   int64
	ProductID   int64
	ProductName string
	Unit        string
	Quantity    int64
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// Invoice is the fiscal record of a completed order.
// Customer and line data are copied so later catalog or customer edits do not alter it.
type Invoice struct {
	shared.BaseAggregateRoot
	Code          string
	OrderID       int64
	CustomerID    int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	ShippingFee   decimal.Decimal
	Total         decimal.Decimal
	Status        InvoiceStatus
	IssuedAt      time.Time
	Lines         []InvoiceLine
}

// InvoiceRepository persists invoices
type InvoiceRepository interface {
	// Create inserts the invoice and its lines. A second invoice for the same order
	// or a reused code is rejected as a conflict.
	Create(ctx context.Context, invoice *Invoice) error
	FindByOrderID(ctx context.Context, orderID int64) (*Invoice, error)
}
