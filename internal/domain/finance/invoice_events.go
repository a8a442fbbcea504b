package finance

import (
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// EventTypeInvoiceGenerated is raised when an order completion materializes its invoice
const EventTypeInvoiceGenerated = "InvoiceGenerated"

// InvoiceGeneratedEvent carries the totals of a new invoice
type InvoiceGeneratedEvent struct {
	shared.BaseDomainEvent
	InvoiceID int64           `json:"invoice_id"`
	Code      string          `json:"code"`
	OrderID   int64           `json:"order_id"`
	Total     decimal.Decimal `json:"total"`
}

// NewInvoiceGeneratedEvent creates a new InvoiceGeneratedEvent. The invoice must already have an id.
func NewInvoiceGeneratedEvent(invoice *Invoice) *InvoiceGeneratedEvent {
	return &InvoiceGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceGenerated, AggregateTypeInvoice, invoice.ID),
		InvoiceID:       invoice.ID,
		Code:            invoice.Code,
		OrderID:         invoice.OrderID,
		Total:           invoice.Total,
	}
}
