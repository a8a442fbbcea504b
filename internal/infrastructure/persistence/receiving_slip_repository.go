package persistence

import (
	"context"

	"github.com/shopdesk/backoffice/internal/domain/inventory"
	"github.com/shopdesk/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReceivingSlipRepository implements inventory.ReceivingSlipRepository using GORM
type GormReceivingSlipRepository struct {
	db *gorm.DB
}

// NewGormReceivingSlipRepository creates a new GormReceivingSlipRepository
func NewGormReceivingSlipRepository(db *gorm.DB) *GormReceivingSlipRepository {
	return &GormReceivingSlipRepository{db: db}
}

// FindByID loads a slip with its items
func (r *GormReceivingSlipRepository) FindByID(ctx context.Context, id int64) (*inventory.ReceivingSlip, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate loads a slip with SELECT ... FOR UPDATE on its header row
func (r *GormReceivingSlipRepository) FindByIDForUpdate(ctx context.Context, id int64) (*inventory.ReceivingSlip, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormReceivingSlipRepository) find(db *gorm.DB, id int64) (*inventory.ReceivingSlip, error) {
	var model models.ReceivingSlipModel
	err := db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&model, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, notFound("receiving_slip", id))
	}
	return model.ToDomain(), nil
}

// ExistsByReferenceNo reports whether a slip already uses the reference number
func (r *GormReceivingSlipRepository) ExistsByReferenceNo(ctx context.Context, referenceNo string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ReceivingSlipModel{}).
		Where("reference_no = ?", referenceNo).
		Count(&count).Error
	return count > 0, err
}

// Create inserts the slip and its items
func (r *GormReceivingSlipRepository) Create(ctx context.Context, slip *inventory.ReceivingSlip) error {
	model := models.ReceivingSlipModelFromDomain(slip)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, nil)
	}
	slip.ID = model.ID
	slip.CreatedAt = model.CreatedAt
	slip.UpdatedAt = model.UpdatedAt
	for i := range slip.Items {
		slip.Items[i].ID = model.Items[i].ID
		slip.Items[i].SlipID = model.ID
	}
	return nil
}

// Save updates the header and brings the stored items in line with slip.Items
func (r *GormReceivingSlipRepository) Save(ctx context.Context, slip *inventory.ReceivingSlip) error {
	db := r.db.WithContext(ctx)

	header := &models.ReceivingSlipModel{}
	header.FromDomain(slip)
	result := db.Model(header).
		Select("reference_no", "supplier", "receipt_date", "note", "status", "confirmed_at", "updated_at").
		Updates(header)
	if result.Error != nil {
		return translateError(result.Error, nil)
	}
	if result.RowsAffected == 0 {
		return notFound("receiving_slip", slip.ID)
	}

	keep := make([]int64, 0, len(slip.Items))
	for _, item := range slip.Items {
		if item.ID != 0 {
			keep = append(keep, item.ID)
		}
	}
	if err := pruneItems(db, &models.ReceivingSlipItemModel{}, slip.ID, keep); err != nil {
		return err
	}
	for i := range slip.Items {
		item := models.ReceivingSlipItemModelFromDomain(&slip.Items[i])
		item.SlipID = slip.ID
		if err := db.Save(&item).Error; err != nil {
			return err
		}
		slip.Items[i].ID = item.ID
		slip.Items[i].SlipID = slip.ID
	}
	slip.UpdatedAt = header.UpdatedAt
	return nil
}

// Delete removes a slip and its items
func (r *GormReceivingSlipRepository) Delete(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("slip_id = ?", id).Delete(&models.ReceivingSlipItemModel{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.ReceivingSlipModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("receiving_slip", id)
	}
	return nil
}

// Ensure GormReceivingSlipRepository implements inventory.ReceivingSlipRepository
var _ inventory.ReceivingSlipRepository = (*GormReceivingSlipRepository)(nil)
