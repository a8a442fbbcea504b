package catalog

import (
	"strings"

	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a sellable item together with its on-hand quantity.
// The quantity is only ever changed through the stock ledger.
type Product struct {
	shared.BaseAggregateRoot
	Code          string
	Name          string
	Unit          string
	Price         decimal.Decimal
	StockQuantity int64
}

// NewProduct creates a new product with zero stock
func NewProduct(code, name, unit string, price decimal.Decimal) (*Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewValidationError("INVALID_PRODUCT_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewValidationError("INVALID_PRODUCT_CODE", "Product code cannot exceed 50 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if strings.TrimSpace(unit) == "" {
		return nil, shared.NewValidationError("INVALID_UNIT", "Product unit cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewValidationError("INVALID_PRICE", "Product price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              strings.TrimSpace(name),
		Unit:              strings.TrimSpace(unit),
		Price:             price,
	}, nil
}

// CodeProductNotFound is returned when referenced products do not exist
const CodeProductNotFound = "PRODUCT_NOT_FOUND"

// NewProductNotFoundError reports the product ids that could not be resolved
func NewProductNotFoundError(missing []int64) *shared.DomainError {
	return shared.NewNotFoundError(CodeProductNotFound, "Products not found: %v", missing).
		WithDetail("missing_product_ids", missing)
}
