package models

import (
	"time"

	"github.com/shopdesk/backoffice/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
// The unique index on order_id keeps an order to a single invoice.
type InvoiceModel struct {
	BaseModel
	Code          string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderID       int64           `gorm:"not null;uniqueIndex"`
	CustomerID    int64           `gorm:"not null;index"`
	CustomerName  string          `gorm:"type:varchar(200);not null"`
	CustomerEmail string          `gorm:"type:varchar(200)"`
	CustomerPhone string          `gorm:"type:varchar(50)"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Discount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Tax           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ShippingFee   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null"`
	IssuedAt      time.Time       `gorm:"not null"`
	// Associations
	Lines []InvoiceItemModel `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice aggregate
func (m *InvoiceModel) ToDomain() *finance.Invoice {
	inv := &finance.Invoice{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Code:              m.Code,
		OrderID:           m.OrderID,
		CustomerID:        m.CustomerID,
		CustomerName:      m.CustomerName,
		CustomerEmail:     m.CustomerEmail,
		CustomerPhone:     m.CustomerPhone,
		Subtotal:          m.Subtotal,
		Discount:          m.Discount,
		Tax:               m.Tax,
		ShippingFee:       m.ShippingFee,
		Total:             m.Total,
		Status:            finance.InvoiceStatus(m.Status),
		IssuedAt:          m.IssuedAt,
		Lines:             make([]finance.InvoiceLine, len(m.Lines)),
	}
	for i, line := range m.Lines {
		inv.Lines[i] = finance.InvoiceLine{
			ID:          line.ID,
			InvoiceID:   line.InvoiceID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Unit:        line.Unit,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		}
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice aggregate
func (m *InvoiceModel) FromDomain(inv *finance.Invoice) {
	m.FromDomainBaseEntity(inv.BaseEntity)
	m.Code = inv.Code
	m.OrderID = inv.OrderID
	m.CustomerID = inv.CustomerID
	m.CustomerName = inv.CustomerName
	m.CustomerEmail = inv.CustomerEmail
	m.CustomerPhone = inv.CustomerPhone
	m.Subtotal = inv.Subtotal
	m.Discount = inv.Discount
	m.Tax = inv.Tax
	m.ShippingFee = inv.ShippingFee
	m.Total = inv.Total
	m.Status = string(inv.Status)
	m.IssuedAt = inv.IssuedAt
	m.Lines = make([]InvoiceItemModel, len(inv.Lines))
	for i, line := range inv.Lines {
		m.Lines[i] = InvoiceItemModel{
			ID:          line.ID,
			InvoiceID:   line.InvoiceID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Unit:        line.Unit,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		}
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice aggregate
func InvoiceModelFromDomain(inv *finance.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceItemModel is the persistence model for an invoice line
type InvoiceItemModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	InvoiceID   int64           `gorm:"not null;index"`
	ProductID   int64           `gorm:"not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}
