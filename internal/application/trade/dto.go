package trade

import (
	"time"

	"github.com/shopdesk/backoffice/internal/domain/finance"
	"github.com/shopdesk/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// PlaceOrderRequest represents a checkout request.
// Prices come from the catalog; the request only names products and quantities.
type PlaceOrderRequest struct {
	CustomerID    int64                 `json:"customer_id" binding:"required,gt=0"`
	PaymentMethod string                `json:"payment_method" binding:"required,oneof=COD QR"`
	ShippingFee   decimal.Decimal       `json:"shipping_fee"`
	Items         []PlaceOrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// PlaceOrderItemInput represents a line of a checkout request
type PlaceOrderItemInput struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
	Quantity  int64 `json:"quantity" binding:"required,gt=0"`
}

// ChangeOrderStatusRequest carries the requested status label.
// Canonical names and localized synonyms are both accepted.
type ChangeOrderStatusRequest struct {
	Status string `json:"status" binding:"required,max=50"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID             int64               `json:"id"`
	CustomerID     int64               `json:"customer_id"`
	CustomerName   string              `json:"customer_name,omitempty"`
	Status         string              `json:"status"`
	PaymentMethod  string              `json:"payment_method"`
	PaymentStatus  string              `json:"payment_status"`
	PaidAt         *time.Time          `json:"paid_at,omitempty"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	TaxAmount      decimal.Decimal     `json:"tax_amount"`
	ShippingFee    decimal.Decimal     `json:"shipping_fee"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	InvoiceID      *int64              `json:"invoice_id,omitempty"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// OrderStatusChangeResponse reports the outcome of a status change
type OrderStatusChangeResponse struct {
	OrderID        int64            `json:"order_id"`
	PreviousStatus string           `json:"previous_status"`
	Status         string           `json:"status"`
	PaymentStatus  string           `json:"payment_status"`
	Invoice        *InvoiceResponse `json:"invoice,omitempty"`
}

// InvoiceLineResponse represents an invoice line in API responses
type InvoiceLineResponse struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            int64                 `json:"id"`
	Code          string                `json:"code"`
	OrderID       int64                 `json:"order_id"`
	CustomerName  string                `json:"customer_name"`
	CustomerEmail string                `json:"customer_email"`
	CustomerPhone string                `json:"customer_phone"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Discount      decimal.Decimal       `json:"discount"`
	Tax           decimal.Decimal       `json:"tax"`
	ShippingFee   decimal.Decimal       `json:"shipping_fee"`
	Total         decimal.Decimal       `json:"total"`
	Status        string                `json:"status"`
	IssuedAt      time.Time             `json:"issued_at"`
	Lines         []InvoiceLineResponse `json:"lines"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}
	resp := OrderResponse{
		ID:             o.ID,
		CustomerID:     o.CustomerID,
		Status:         string(o.Status),
		PaymentMethod:  string(o.PaymentMethod),
		PaymentStatus:  string(o.PaymentStatus),
		PaidAt:         o.PaidAt,
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		TaxAmount:      o.TaxAmount,
		ShippingFee:    o.ShippingFee,
		TotalAmount:    o.TotalAmount,
		InvoiceID:      o.InvoiceID,
		Items:          items,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.Customer != nil {
		resp.CustomerName = o.Customer.Name
	}
	return resp
}

// ToInvoiceResponse converts a domain Invoice to InvoiceResponse
func ToInvoiceResponse(inv *finance.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, l := range inv.Lines {
		lines[i] = InvoiceLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Unit:        l.Unit,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		}
	}
	return InvoiceResponse{
		ID:            inv.ID,
		Code:          inv.Code,
		OrderID:       inv.OrderID,
		CustomerName:  inv.CustomerName,
		CustomerEmail: inv.CustomerEmail,
		CustomerPhone: inv.CustomerPhone,
		Subtotal:      inv.Subtotal,
		Discount:      inv.Discount,
		Tax:           inv.Tax,
		ShippingFee:   inv.ShippingFee,
		Total:         inv.Total,
		Status:        string(inv.Status),
		IssuedAt:      inv.IssuedAt,
		Lines:         lines,
	}
}
