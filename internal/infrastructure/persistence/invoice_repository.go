package persistence

import (
	"context"
	"errors"

	"github.com/shopdesk/backoffice/internal/domain/finance"
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopdesk/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements finance.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Create inserts the invoice and its lines.
// The unique indexes on order_id and code turn a second invoice into a conflict.
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *finance.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		err = translateError(err, nil)
		if errors.Is(err, shared.ErrDuplicate) {
			return shared.NewConflictError("INVOICE_EXISTS",
				"Order %d already has an invoice or code %s is taken", invoice.OrderID, invoice.Code)
		}
		return err
	}
	invoice.ID = model.ID
	invoice.CreatedAt = model.CreatedAt
	invoice.UpdatedAt = model.UpdatedAt
	for i := range invoice.Lines {
		invoice.Lines[i].ID = model.Lines[i].ID
		invoice.Lines[i].InvoiceID = model.ID
	}
	return nil
}

// FindByOrderID loads the invoice of an order with its lines
func (r *GormInvoiceRepository) FindByOrderID(ctx context.Context, orderID int64) (*finance.Invoice, error) {
	var model models.InvoiceModel
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&model, "order_id = ?", orderID).Error
	if err != nil {
		return nil, translateError(err, notFound("invoice", orderID))
	}
	return model.ToDomain(), nil
}

// Ensure GormInvoiceRepository implements finance.InvoiceRepository
var _ finance.InvoiceRepository = (*GormInvoiceRepository)(nil)
