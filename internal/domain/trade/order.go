package trade

import (
	"time"

	"github.com/shopdesk/backoffice/internal/domain/catalog"
	"github.com/shopdesk/backoffice/internal/domain/partner"
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopdesk/backoffice/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer settles the order
type PaymentMethod string

const (
	PaymentMethodCOD PaymentMethod = "COD" // cash on delivery
	PaymentMethodQR  PaymentMethod = "QR"  // prepaid by bank QR transfer
)

// IsValid reports whether m is a known payment method
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodQR
}

// PaymentStatus tracks whether money has been collected
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "Unpaid"
	PaymentStatusPaid   PaymentStatus = "Paid"
)

// OrderItem is a line of an order with the catalog data captured at checkout
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Unit        string
	Quantity    int64
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// Order is the aggregate root for a customer purchase
type Order struct {
	shared.BaseAggregateRoot
	CustomerID     int64
	Customer       *partner.Customer
	Items          []OrderItem
	Status         OrderStatus
	PaymentMethod  PaymentMethod
	PaymentStatus  PaymentStatus
	PaidAt         *time.Time
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	ShippingFee    decimal.Decimal
	TotalAmount    decimal.Decimal
	InvoiceID      *int64
}

// OrderLine is a requested checkout line resolved against the catalog
type OrderLine struct {
	Product  *catalog.Product
	Quantity int64
}

// NewOrder prices a checkout from catalog data. Client supplied prices are never used.
// total = subtotal - discount + VAT(subtotal - discount) + shippingFee, with discount zero
// because promotions are reflected in catalog prices.
func NewOrder(customer *partner.Customer, method PaymentMethod, shippingFee decimal.Decimal, lines []OrderLine) (*Order, error) {
	if customer == nil {
		return nil, shared.NewValidationError("INVALID_CUSTOMER", "Order requires a customer")
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("INVALID_PAYMENT_METHOD", "Unknown payment method %q", method)
	}
	if shippingFee.IsNegative() {
		return nil, shared.NewValidationError("INVALID_SHIPPING_FEE", "Shipping fee cannot be negative")
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("ORDER_EMPTY", "Order must contain at least one item")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customer.ID,
		Customer:          customer,
		Status:            OrderStatusPending,
		PaymentMethod:     method,
		PaymentStatus:     PaymentStatusUnpaid,
		DiscountAmount:    decimal.Zero,
		ShippingFee:       shippingFee,
		Items:             make([]OrderItem, 0, len(lines)),
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Product == nil {
			return nil, shared.NewValidationError("INVALID_PRODUCT", "Order line requires a product")
		}
		if line.Quantity <= 0 {
			return nil, shared.NewValidationError("INVALID_QUANTITY",
				"Quantity for product %d must be positive", line.Product.ID)
		}
		lineTotal := valueobject.LineTotal(line.Product.Price, line.Quantity)
		order.Items = append(order.Items, OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Unit:        line.Product.Unit,
			Quantity:    line.Quantity,
			UnitPrice:   line.Product.Price,
			LineTotal:   lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	taxable := subtotal.Sub(order.DiscountAmount)
	order.Subtotal = subtotal
	order.TaxAmount = valueobject.VAT(taxable)
	order.TotalAmount = valueobject.ClampZero(taxable).Add(order.TaxAmount).Add(shippingFee)

	return order, nil
}

// TransitionTo moves the order to target after the guards hold.
// dispatchReleased tells whether a confirmed dispatch slip exists for the order.
func (o *Order) TransitionTo(target OrderStatus, dispatchReleased bool) error {
	if err := o.CheckTransition(target); err != nil {
		return err
	}
	if target.RequiresDispatchRelease() && !dispatchReleased {
		return NewWarehouseNotConfirmedError(o.ID, SalesDispatchReference(o.ID))
	}

	from := o.Status
	o.Status = target
	if target == OrderStatusPaid || target == OrderStatusCompleted {
		o.markPaid()
	}
	o.Touch()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))

	return nil
}

func (o *Order) markPaid() {
	if o.PaymentStatus == PaymentStatusPaid {
		return
	}
	now := time.Now()
	o.PaymentStatus = PaymentStatusPaid
	o.PaidAt = &now
}

// HasInvoice reports whether an invoice is linked to the order
func (o *Order) HasInvoice() bool {
	return o.InvoiceID != nil
}

// NeedsInvoice reports whether a completed order still lacks its invoice
func (o *Order) NeedsInvoice() bool {
	return o.Status == OrderStatusCompleted && !o.HasInvoice()
}

// AttachInvoice links a persisted invoice to the order
func (o *Order) AttachInvoice(invoiceID int64) {
	o.InvoiceID = &invoiceID
	o.Touch()
}

// CheckDeletable returns an error unless the order is cancelled and was never invoiced
func (o *Order) CheckDeletable() error {
	if o.Status != OrderStatusCancelled {
		return shared.NewConflictError("ORDER_NOT_DELETABLE",
			"Only %s orders can be deleted, order %d is %s", OrderStatusCancelled, o.ID, o.Status)
	}
	if o.HasInvoice() {
		return shared.NewConflictError("ORDER_NOT_DELETABLE", "Order %d has an invoice and cannot be deleted", o.ID)
	}
	return nil
}

// ItemsSubtotal returns Σ unitPrice × quantity over the items
func (o *Order) ItemsSubtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(valueobject.LineTotal(item.UnitPrice, item.Quantity))
	}
	return sum
}
