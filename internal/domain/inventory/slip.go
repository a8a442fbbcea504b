package inventory

import (
	"github.com/shopdesk/backoffice/internal/domain/shared"
)

// SlipStatus is the lifecycle state shared by receiving and dispatch slips
type SlipStatus string

const (
	SlipStatusDraft     SlipStatus = "Draft"
	SlipStatusConfirmed SlipStatus = "Confirmed"
)

// Slip error codes
const (
	CodeSlipNotDraft       = "SLIP_NOT_DRAFT"
	CodeSlipEmpty          = "SLIP_EMPTY"
	CodeItemProductMissing = "ITEM_PRODUCT_MISSING"
	CodeItemNotFound       = "SLIP_ITEM_NOT_FOUND"
	CodeDuplicateReference = "DUPLICATE_REFERENCE"
	CodeDispatchLinked     = "DISPATCH_LINKED_TO_ORDER"
	CodeInvalidQuantity    = "INVALID_QUANTITY"
)

// MaxLineQuantity bounds the quantity of a single slip line
const MaxLineQuantity int64 = 1_000_000_000

func newNotDraftError(kind string, id int64, status SlipStatus) *shared.DomainError {
	return shared.NewConflictError(CodeSlipNotDraft, "%s %d is %s and can no longer be changed", kind, id, status)
}

func newItemNotFoundError(kind string, slipID, itemID int64) *shared.DomainError {
	return shared.NewNotFoundError(CodeItemNotFound, "%s %d has no item %d", kind, slipID, itemID)
}

// NewDuplicateReferenceError reports a reference number that is already taken
func NewDuplicateReferenceError(referenceNo string) *shared.DomainError {
	return shared.NewConflictError(CodeDuplicateReference, "Reference number %q is already in use", referenceNo).
		WithDetail("reference_no", referenceNo)
}

func validateQuantity(qty int64) error {
	if qty <= 0 {
		return shared.NewValidationError(CodeInvalidQuantity, "Quantity must be positive")
	}
	if qty > MaxLineQuantity {
		return shared.NewValidationError(CodeInvalidQuantity, "Quantity cannot exceed %d", MaxLineQuantity)
	}
	return nil
}
