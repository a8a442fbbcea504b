package models

import (
	"time"

	"github.com/shopdesk/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderModel is the persistence model for the Order aggregate root.
// The invoice link is the invoices.order_id side of a has-one relation.
type OrderModel struct {
	BaseModel
	CustomerID     int64           `gorm:"not null;index"`
	Status         string          `gorm:"type:varchar(20);not null;index"`
	PaymentMethod  string          `gorm:"type:varchar(10);not null"`
	PaymentStatus  string          `gorm:"type:varchar(10);not null"`
	PaidAt         *time.Time      `gorm:"default:null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ShippingFee    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DeletedAt      gorm.DeletedAt  `gorm:"index"`
	// Associations
	Customer *CustomerModel   `gorm:"foreignKey:CustomerID"`
	Items    []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
	Invoice  *InvoiceModel    `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order aggregate
func (m *OrderModel) ToDomain() *trade.Order {
	order := &trade.Order{
		BaseAggregateRoot: m.ToAggregateRoot(),
		CustomerID:        m.CustomerID,
		Items:             make([]trade.OrderItem, len(m.Items)),
		Status:            trade.OrderStatus(m.Status),
		PaymentMethod:     trade.PaymentMethod(m.PaymentMethod),
		PaymentStatus:     trade.PaymentStatus(m.PaymentStatus),
		PaidAt:            m.PaidAt,
		Subtotal:          m.Subtotal,
		DiscountAmount:    m.DiscountAmount,
		TaxAmount:         m.TaxAmount,
		ShippingFee:       m.ShippingFee,
		TotalAmount:       m.TotalAmount,
	}
	if m.Customer != nil {
		order.Customer = m.Customer.ToDomain()
	}
	for i, item := range m.Items {
		order.Items[i] = item.ToDomain()
	}
	if m.Invoice != nil && m.Invoice.ID != 0 {
		id := m.Invoice.ID
		order.InvoiceID = &id
	}
	return order
}

// FromDomain populates the persistence model from a domain Order aggregate.
// Customer and invoice associations are never written through the order.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.CustomerID = o.CustomerID
	m.Status = string(o.Status)
	m.PaymentMethod = string(o.PaymentMethod)
	m.PaymentStatus = string(o.PaymentStatus)
	m.PaidAt = o.PaidAt
	m.Subtotal = o.Subtotal
	m.DiscountAmount = o.DiscountAmount
	m.TaxAmount = o.TaxAmount
	m.ShippingFee = o.ShippingFee
	m.TotalAmount = o.TotalAmount
	m.Items = make([]OrderItemModel, len(o.Items))
	for i := range o.Items {
		m.Items[i] = OrderItemModelFromDomain(&o.Items[i])
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order aggregate
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for an order line
type OrderItemModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	OrderID     int64           `gorm:"not null;index"`
	ProductID   int64           `gorm:"not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() trade.OrderItem {
	return trade.OrderItem{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Unit:        m.Unit,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		LineTotal:   m.LineTotal,
	}
}

// OrderItemModelFromDomain creates a persistence model from a domain OrderItem
func OrderItemModelFromDomain(i *trade.OrderItem) OrderItemModel {
	return OrderItemModel{
		ID:          i.ID,
		OrderID:     i.OrderID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Unit:        i.Unit,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		LineTotal:   i.LineTotal,
	}
}
