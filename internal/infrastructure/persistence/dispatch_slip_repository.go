package persistence

import (
	"context"

	"github.com/shopdesk/backoffice/internal/domain/inventory"
	"github.com/shopdesk/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDispatchSlipRepository implements inventory.DispatchSlipRepository using GORM
type GormDispatchSlipRepository struct {
	db *gorm.DB
}

// NewGormDispatchSlipRepository creates a new GormDispatchSlipRepository
func NewGormDispatchSlipRepository(db *gorm.DB) *GormDispatchSlipRepository {
	return &GormDispatchSlipRepository{db: db}
}

// FindByID loads a slip with its items
func (r *GormDispatchSlipRepository) FindByID(ctx context.Context, id int64) (*inventory.DispatchSlip, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate loads a slip with SELECT ... FOR UPDATE on its header row
func (r *GormDispatchSlipRepository) FindByIDForUpdate(ctx context.Context, id int64) (*inventory.DispatchSlip, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormDispatchSlipRepository) find(db *gorm.DB, id int64) (*inventory.DispatchSlip, error) {
	var model models.DispatchSlipModel
	err := db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&model, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, notFound("dispatch_slip", id))
	}
	return model.ToDomain(), nil
}

// Create inserts the slip and its items
func (r *GormDispatchSlipRepository) Create(ctx context.Context, slip *inventory.DispatchSlip) error {
	model := models.DispatchSlipModelFromDomain(slip)
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
func (r *GormDispatchSlipRepository) Save(ctx context.Context, slip *inventory.DispatchSlip) error {
	db := r.db.WithContext(ctx)

	header := &models.DispatchSlipModel{}
	header.FromDomain(slip)
	result := db.Model(header).
		Select("note", "status", "confirmed_at", "updated_at").
		Updates(header)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("dispatch_slip", slip.ID)
	}

	keep := make([]int64, 0, len(slip.Items))
	for _, item := range slip.Items {
		if item.ID != 0 {
			keep = append(keep, item.ID)
		}
	}
	if err := pruneItems(db, &models.DispatchSlipItemModel{}, slip.ID, keep); err != nil {
		return err
	}
	for i := range slip.Items {
		item := models.DispatchSlipItemModelFromDomain(&slip.Items[i])
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
func (r *GormDispatchSlipRepository) Delete(ctx context.Context, id int64) error {
	removed, err := r.deleteWhere(r.db.WithContext(ctx), "id = ?", id)
	if err != nil {
		return err
	}
	if removed == 0 {
		return notFound("dispatch_slip", id)
	}
	return nil
}

// ExistsConfirmed reports whether a confirmed slip carries the reference number
func (r *GormDispatchSlipRepository) ExistsConfirmed(ctx context.Context, referenceNo string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DispatchSlipModel{}).
		Where("reference_no = ? AND status = ?", referenceNo, string(inventory.SlipStatusConfirmed)).
		Count(&count).Error
	return count > 0, err
}

// DeleteByReference removes every slip with the reference number, whatever its status
func (r *GormDispatchSlipRepository) DeleteByReference(ctx context.Context, referenceNo string) (int64, error) {
	return r.deleteWhere(r.db.WithContext(ctx), "reference_no = ?", referenceNo)
}

func (r *GormDispatchSlipRepository) deleteWhere(db *gorm.DB, query string, args ...any) (int64, error) {
	var ids []int64
	if err := db.Model(&models.DispatchSlipModel{}).Where(query, args...).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := db.Where("slip_id IN ?", ids).Delete(&models.DispatchSlipItemModel{}).Error; err != nil {
		return 0, err
	}
	result := db.Where("id IN ?", ids).Delete(&models.DispatchSlipModel{})
	return result.RowsAffected, result.Error
}

// Ensure GormDispatchSlipRepository implements inventory.DispatchSlipRepository
var _ inventory.DispatchSlipRepository = (*GormDispatchSlipRepository)(nil)
