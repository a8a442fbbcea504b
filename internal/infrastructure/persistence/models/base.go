package models

import (
	"time"

	"github.com/shopdesk/backoffice/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToAggregateRoot converts BaseModel to a domain BaseAggregateRoot without pending events
func (m *BaseModel) ToAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{BaseEntity: m.ToDomain()}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// All returns every persistence model, parents before children
func All() []any {
	return []any{
		&ProductModel{},
		&CustomerModel{},
		&OrderModel{},
		&OrderItemModel{},
		&InvoiceModel{},
		&InvoiceItemModel{},
		&ReceivingSlipModel{},
		&ReceivingSlipItemModel{},
		&DispatchSlipModel{},
		&DispatchSlipItemModel{},
		&StockMovementModel{},
		&OutboxEntryModel{},
	}
}
