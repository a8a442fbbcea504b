package persistence

import (
	"context"

	"github.com/shopdesk/backoffice/internal/domain/catalog"
	"github.com/shopdesk/backoffice/internal/domain/inventory"
	"github.com/shopdesk/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockLedger implements inventory.StockLedger on the products table.
// It must run inside a transaction: the product rows stay locked until commit.
type GormStockLedger struct {
	db *gorm.DB
}

// NewGormStockLedger creates a new GormStockLedger
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// ApplyReceipt locks every affected product in ascending id order, fails listing
// every unknown id, then increments the quantities and journals one movement per product.
// Non-positive quantities and balances beyond int64 are rejected before any row is written.
func (l *GormStockLedger) ApplyReceipt(ctx context.Context, sourceRef string, receipts []inventory.StockReceipt) ([]inventory.StockChange, error) {
	receipts, err := inventory.AggregateReceipts(receipts)
	if err != nil {
		return nil, err
	}
	if len(receipts) == 0 {
		return nil, nil
	}
	ids := inventory.ProductIDs(receipts)
	db := l.db.WithContext(ctx)

	var locked []models.ProductModel
	err = db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "stock_quantity").
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&locked).Error
	if err != nil {
		return nil, err
	}
	found := make([]catalog.Product, len(locked))
	onHand := make(map[int64]int64, len(locked))
	for i, p := range locked {
		found[i].ID = p.ID
		onHand[p.ID] = p.StockQuantity
	}
	if missing := catalog.MissingIDs(ids, found); len(missing) > 0 {
		return nil, catalog.NewProductNotFoundError(missing)
	}

	changes := make([]inventory.StockChange, len(receipts))
	movements := make([]models.StockMovementModel, len(receipts))
	for i, r := range receipts {
		balance, ok := inventory.AddQuantity(onHand[r.ProductID], r.Quantity)
		if !ok {
			return nil, inventory.NewQuantityOverflowError(r.ProductID)
		}
		changes[i] = inventory.StockChange{ProductID: r.ProductID, AddedQty: r.Quantity, BalanceAfter: balance}
		movements[i] = models.StockMovementModel{
			ProductID:    r.ProductID,
			Quantity:     r.Quantity,
			BalanceAfter: balance,
			Reason:       string(inventory.MovementReasonReceipt),
			SourceRef:    sourceRef,
		}
	}
	for _, r := range receipts {
		err := db.Model(&models.ProductModel{}).
			Where("id = ?", r.ProductID).
			Update("stock_quantity", gorm.Expr("stock_quantity + ?", r.Quantity)).Error
		if err != nil {
			return nil, err
		}
	}
	if err := db.Create(&movements).Error; err != nil {
		return nil, err
	}
	return changes, nil
}

// Ensure GormStockLedger implements inventory.StockLedger
var _ inventory.StockLedger = (*GormStockLedger)(nil)
