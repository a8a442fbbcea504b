package models

import (
	"time"

	"github.com/shopdesk/backoffice/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// ReceivingSlipModel is the persistence model for the ReceivingSlip aggregate root
type ReceivingSlipModel struct {
	BaseModel
	ReferenceNo string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Supplier    string     `gorm:"type:varchar(200);not null"`
	ReceiptDate time.Time  `gorm:"not null"`
	Note        string     `gorm:"type:text"`
	Status      string     `gorm:"type:varchar(20);not null;index"`
	ConfirmedAt *time.Time `gorm:"default:null"`
	// Associations
	Items []ReceivingSlipItemModel `gorm:"foreignKey:SlipID;references:ID"`
}

// TableName returns the table name for GORM
func (ReceivingSlipModel) TableName() string {
	return "receiving_slips"
}

// ToDomain converts the persistence model to a domain ReceivingSlip aggregate
func (m *ReceivingSlipModel) ToDomain() *inventory.ReceivingSlip {
	slip := &inventory.ReceivingSlip{
		BaseAggregateRoot: m.ToAggregateRoot(),
		ReferenceNo:       m.ReferenceNo,
		Supplier:          m.Supplier,
		ReceiptDate:       m.ReceiptDate,
		Note:              m.Note,
		Status:            inventory.SlipStatus(m.Status),
		ConfirmedAt:       m.ConfirmedAt,
		Items:             make([]inventory.ReceivingSlipItem, len(m.Items)),
	}
	for i, item := range m.Items {
		slip.Items[i] = item.ToDomain()
	}
	return slip
}

// FromDomain populates the header fields from a domain ReceivingSlip.
// Items are synchronized separately by the repository.
func (m *ReceivingSlipModel) FromDomain(s *inventory.ReceivingSlip) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.ReferenceNo = s.ReferenceNo
	m.Supplier = s.Supplier
	m.ReceiptDate = s.ReceiptDate
	m.Note = s.Note
	m.Status = string(s.Status)
	m.ConfirmedAt = s.ConfirmedAt
}

// ReceivingSlipModelFromDomain creates a new persistence model, items included
func ReceivingSlipModelFromDomain(s *inventory.ReceivingSlip) *ReceivingSlipModel {
	m := &ReceivingSlipModel{}
	m.FromDomain(s)
	m.Items = make([]ReceivingSlipItemModel, len(s.Items))
	for i := range s.Items {
		m.Items[i] = ReceivingSlipItemModelFromDomain(&s.Items[i])
	}
	return m
}

// ReceivingSlipItemModel is the persistence model for a receiving line
type ReceivingSlipItemModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	SlipID      int64           `gorm:"not null;index"`
	ProductID   *int64          `gorm:"index"`
	Description string          `gorm:"type:varchar(200)"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (ReceivingSlipItemModel) TableName() string {
	return "receiving_slip_items"
}

// ToDomain converts the persistence model to a domain ReceivingSlipItem
func (m *ReceivingSlipItemModel) ToDomain() inventory.ReceivingSlipItem {
	return inventory.ReceivingSlipItem{
		ID:          m.ID,
		SlipID:      m.SlipID,
		ProductID:   m.ProductID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		LineTotal:   m.LineTotal,
	}
}

// ReceivingSlipItemModelFromDomain creates a persistence model from a domain ReceivingSlipItem
func ReceivingSlipItemModelFromDomain(i *inventory.ReceivingSlipItem) ReceivingSlipItemModel {
	return ReceivingSlipItemModel{
		ID:          i.ID,
		SlipID:      i.SlipID,
		ProductID:   i.ProductID,
		Description: i.Description,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		LineTotal:   i.LineTotal,
	}
}

// DispatchSlipModel is the persistence model for the DispatchSlip aggregate root
type DispatchSlipModel struct {
	BaseModel
	Kind        string     `gorm:"type:varchar(20);not null"`
	ReferenceNo string     `gorm:"type:varchar(50);not null;index:idx_dispatch_reference_status,priority:1"`
	OrderID     *int64     `gorm:"index"`
	Note        string     `gorm:"type:text"`
	Status      string     `gorm:"type:varchar(20);not null;index:idx_dispatch_reference_status,priority:2"`
	ConfirmedAt *time.Time `gorm:"default:null"`
	// Associations
	Items []DispatchSlipItemModel `gorm:"foreignKey:SlipID;references:ID"`
}

// TableName returns the table name for GORM
func (DispatchSlipModel) TableName() string {
	return "dispatch_slips"
}

// ToDomain converts the persistence model to a domain DispatchSlip aggregate
func (m *DispatchSlipModel) ToDomain() *inventory.DispatchSlip {
	slip := &inventory.DispatchSlip{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Kind:              inventory.DispatchKind(m.Kind),
		ReferenceNo:       m.ReferenceNo,
		OrderID:           m.OrderID,
		Note:              m.Note,
		Status:            inventory.SlipStatus(m.Status),
		ConfirmedAt:       m.ConfirmedAt,
		Items:             make([]inventory.DispatchSlipItem, len(m.Items)),
	}
	for i, item := range m.Items {
		slip.Items[i] = inventory.DispatchSlipItem{
			ID:        item.ID,
			SlipID:    item.SlipID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return slip
}

// FromDomain populates the header fields from a domain DispatchSlip.
// Items are synchronized separately by the repository.
func (m *DispatchSlipModel) FromDomain(s *inventory.DispatchSlip) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Kind = string(s.Kind)
	m.ReferenceNo = s.ReferenceNo
	m.OrderID = s.OrderID
	m.Note = s.Note
	m.Status = string(s.Status)
	m.ConfirmedAt = s.ConfirmedAt
}

// DispatchSlipModelFromDomain creates a new persistence model, items included
func DispatchSlipModelFromDomain(s *inventory.DispatchSlip) *DispatchSlipModel {
	m := &DispatchSlipModel{}
	m.FromDomain(s)
	m.Items = make([]DispatchSlipItemModel, len(s.Items))
	for i := range s.Items {
		m.Items[i] = DispatchSlipItemModelFromDomain(&s.Items[i])
	}
	return m
}

// DispatchSlipItemModel is the persistence model for a dispatch line
type DispatchSlipItemModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	SlipID    int64           `gorm:"not null;index"`
	ProductID int64           `gorm:"not null;index"`
	Quantity  int64           `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (DispatchSlipItemModel) TableName() string {
	return "dispatch_slip_items"
}

// DispatchSlipItemModelFromDomain creates a persistence model from a domain DispatchSlipItem
func DispatchSlipItemModelFromDomain(i *inventory.DispatchSlipItem) DispatchSlipItemModel {
	return DispatchSlipItemModel{
		ID:        i.ID,
		SlipID:    i.SlipID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
	}
}

// StockMovementModel is one row of the append-only stock journal
type StockMovementModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	ProductID    int64     `gorm:"not null;index"`
	Quantity     int64     `gorm:"not null"`
	BalanceAfter int64     `gorm:"not null"`
	Reason       string    `gorm:"type:varchar(20);not null"`
	SourceRef    string    `gorm:"type:varchar(50);not null;index"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockMovementModel) TableName() string {
	return "stock_movements"
}
