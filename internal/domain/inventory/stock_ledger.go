package inventory

import (
	"context"
	"math"
	"sort"

	"github.com/shopdesk/backoffice/internal/domain/shared"
)

// MovementReason explains why on-hand stock changed
type MovementReason string

// MovementReasonReceipt is stock booked in by a confirmed receiving slip
const MovementReasonReceipt MovementReason = "RECEIPT"

// StockReceipt is the quantity of one product to book in
type StockReceipt struct {
	ProductID int64
	Quantity  int64
}

// StockChange is the effect of a ledger application on one product
type StockChange struct {
	ProductID    int64 `json:"product_id"`
	AddedQty     int64 `json:"added_qty"`
	BalanceAfter int64 `json:"balance_after"`
}

// StockLedger owns every change of product on-hand quantity.
// Implementations must lock the affected product rows for the duration of the
// surrounding transaction so that concurrent applications never lose an update.
type StockLedger interface {
	// ApplyReceipt resolves all products in one batch, fails with a not found error
	// naming every missing id, and otherwise increments each product by its quantity.
	ApplyReceipt(ctx context.Context, sourceRef string, receipts []StockReceipt) ([]StockChange, error)
}

// AggregateReceipts sums quantities per product and orders the result by product id.
// Ascending order is also the row lock order, which keeps concurrent confirmations deadlock free.
// Every quantity and every per-product total must be positive and fit in an int64.
func AggregateReceipts(receipts []StockReceipt) ([]StockReceipt, error) {
	totals := make(map[int64]int64, len(receipts))
	for _, r := range receipts {
		if r.Quantity <= 0 {
			return nil, shared.NewValidationError(CodeInvalidQuantity,
				"Quantity for product %d must be positive", r.ProductID).
				WithDetail("product_id", r.ProductID)
		}
		sum, ok := AddQuantity(totals[r.ProductID], r.Quantity)
		if !ok {
			return nil, NewQuantityOverflowError(r.ProductID)
		}
		totals[r.ProductID] = sum
	}
	out := make([]StockReceipt, 0, len(totals))
	for id, qty := range totals {
		out = append(out, StockReceipt{ProductID: id, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// AddQuantity adds two quantities and reports false on int64 overflow
func AddQuantity(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

// NewQuantityOverflowError reports a stock quantity that no longer fits in an int64
func NewQuantityOverflowError(productID int64) *shared.DomainError {
	return shared.NewValidationError(CodeInvalidQuantity,
		"Quantity for product %d exceeds the supported range", productID).
		WithDetail("product_id", productID)
}

// ProductIDs returns the product ids of receipts in their current order
func ProductIDs(receipts []StockReceipt) []int64 {
	ids := make([]int64, len(receipts))
	for i, r := range receipts {
		ids[i] = r.ProductID
	}
	return ids
}
