package persistence

import "gorm.io/gorm"

// pruneItems deletes the rows of an item table that belong to slipID but are not in keep
func pruneItems(tx *gorm.DB, model any, slipID int64, keep []int64) error {
	q := tx.Where("slip_id = ?", slipID)
	if len(keep) > 0 {
		q = q.Where("id NOT IN ?", keep)
	}
	return q.Delete(model).Error
}
