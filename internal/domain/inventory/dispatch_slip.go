package inventory

import (
	"strings"
	"time"

	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopdesk/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
)

const dispatchSlipKind = "Dispatch slip"

// DispatchKind tells what a dispatch slip releases goods for
type DispatchKind string

const (
	DispatchKindSales   DispatchKind = "Sales"
	DispatchKindProject DispatchKind = "Project"
)

// DispatchSlipItem is one line of goods leaving the warehouse
type DispatchSlipItem struct {
	ID        int64
	SlipID    int64
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
}

// DispatchSlip is the warehouse release of goods. A confirmed sales slip is what
// allows its order to move forward in the order lifecycle.
type DispatchSlip struct {
	shared.BaseAggregateRoot
	Kind        DispatchKind
	ReferenceNo string
	OrderID     *int64
	Note        string
	Status      SlipStatus
	ConfirmedAt *time.Time
	Items       []DispatchSlipItem
}

// NewSalesDispatchSlip creates a draft slip for a sales order, referenced ORD-{orderID}
func NewSalesDispatchSlip(orderID int64, note string) (*DispatchSlip, error) {
	if orderID <= 0 {
		return nil, shared.NewValidationError("INVALID_ORDER", "Order id must be positive")
	}
	return &DispatchSlip{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              DispatchKindSales,
		ReferenceNo:       trade.SalesDispatchReference(orderID),
		OrderID:           &orderID,
		Note:              note,
		Status:            SlipStatusDraft,
		Items:             make([]DispatchSlipItem, 0),
	}, nil
}

// NewProjectDispatchSlip creates a draft slip for a project reference
func NewProjectDispatchSlip(projectRef, note string) (*DispatchSlip, error) {
	projectRef = strings.TrimSpace(projectRef)
	if projectRef == "" {
		return nil, shared.NewValidationError("INVALID_REFERENCE", "Project reference cannot be empty")
	}
	if len(projectRef) > 50 {
		return nil, shared.NewValidationError("INVALID_REFERENCE", "Project reference cannot exceed 50 characters")
	}
	if _, ok := trade.ParseSalesDispatchReference(projectRef); ok {
		return nil, shared.NewValidationError("INVALID_REFERENCE", "Project reference %q is reserved for sales orders", projectRef)
	}
	return &DispatchSlip{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              DispatchKindProject,
		ReferenceNo:       projectRef,
		Note:              note,
		Status:            SlipStatusDraft,
		Items:             make([]DispatchSlipItem, 0),
	}, nil
}

// NewDispatchSlipItem validates a dispatch line
func NewDispatchSlipItem(productID, quantity int64, unitPrice decimal.Decimal) (DispatchSlipItem, error) {
	if productID <= 0 {
		return DispatchSlipItem{}, shared.NewValidationError("INVALID_PRODUCT", "Product id must be positive")
	}
	if err := validateQuantity(quantity); err != nil {
		return DispatchSlipItem{}, err
	}
	if unitPrice.IsNegative() {
		return DispatchSlipItem{}, shared.NewValidationError("INVALID_PRICE", "Unit price cannot be negative")
	}
	return DispatchSlipItem{ProductID: productID, Quantity: quantity, UnitPrice: unitPrice}, nil
}

// IsConfirmed reports whether the warehouse has released the goods
func (s *DispatchSlip) IsConfirmed() bool {
	return s.Status == SlipStatusConfirmed
}

// EnsureDraft returns a conflict error unless the slip is a draft
func (s *DispatchSlip) EnsureDraft() error {
	if s.Status != SlipStatusDraft {
		return newNotDraftError(dispatchSlipKind, s.ID, s.Status)
	}
	return nil
}

// AddItem appends a line to a draft slip
func (s *DispatchSlip) AddItem(item DispatchSlipItem) error {
	if err := s.EnsureDraft(); err != nil {
		return err
	}
	item.SlipID = s.ID
	s.Items = append(s.Items, item)
	s.Touch()
	return nil
}

// RemoveItem deletes a line from a draft slip
func (s *DispatchSlip) RemoveItem(itemID int64) error {
	if err := s.EnsureDraft(); err != nil {
		return err
	}
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			s.Touch()
			return nil
		}
	}
	return newItemNotFoundError(dispatchSlipKind, s.ID, itemID)
}

// Confirm releases the goods. Stock levels are not changed by dispatch.
func (s *DispatchSlip) Confirm(at time.Time) error {
	if err := s.EnsureDraft(); err != nil {
		return err
	}
	if len(s.Items) == 0 {
		return shared.NewValidationError(CodeSlipEmpty, "Dispatch slip %d has no items", s.ID)
	}
	s.Status = SlipStatusConfirmed
	s.ConfirmedAt = &at
	s.UpdatedAt = at
	s.AddDomainEvent(NewDispatchSlipConfirmedEvent(s))
	return nil
}

// CheckDirectDelete returns an error unless the slip may be deleted on its own.
// Sales slips are only removed together with their order.
func (s *DispatchSlip) CheckDirectDelete() error {
	if s.Kind == DispatchKindSales {
		return shared.NewConflictError(CodeDispatchLinked,
			"Dispatch slip %s belongs to an order and is removed with it", s.ReferenceNo)
	}
	return s.EnsureDraft()
}
