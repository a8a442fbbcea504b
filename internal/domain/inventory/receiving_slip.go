package inventory

import (
	"strings"
	"time"

	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopdesk/backoffice/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

const receivingSlipKind = "Receiving slip"

// ReceivingSlipItem is one line of goods received from a supplier.
// ProductID stays nil until the line is matched to a catalog product.
type ReceivingSlipItem struct {
	ID          int64
	SlipID      int64
	ProductID   *int64
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// NewReceivingSlipItem validates and prices a receiving line
func NewReceivingSlipItem(productID *int64, description string, quantity int64, unitPrice decimal.Decimal) (ReceivingSlipItem, error) {
	if err := validateQuantity(quantity); err != nil {
		return ReceivingSlipItem{}, err
	}
	if !unitPrice.IsPositive() {
		return ReceivingSlipItem{}, shared.NewValidationError("INVALID_PRICE", "Unit price must be positive")
	}
	if productID != nil && *productID <= 0 {
		return ReceivingSlipItem{}, shared.NewValidationError("INVALID_PRODUCT", "Product id must be positive")
	}
	return ReceivingSlipItem{
		ProductID:   productID,
		Description: strings.TrimSpace(description),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   valueobject.LineTotal(unitPrice, quantity),
	}, nil
}

// ReceivingSlip records goods arriving from a supplier.
// Confirming it books the received quantities into stock.
type ReceivingSlip struct {
	shared.BaseAggregateRoot
	ReferenceNo string
	Supplier    string
	ReceiptDate time.Time
	Note        string
	Status      SlipStatus
	ConfirmedAt *time.Time
	Items       []ReceivingSlipItem
}

// NewReceivingSlip creates a draft receiving slip
func NewReceivingSlip(referenceNo, supplier string, receiptDate time.Time, note string) (*ReceivingSlip, error) {
	referenceNo = strings.TrimSpace(referenceNo)
	if referenceNo == "" {
		return nil, shared.NewValidationError("INVALID_REFERENCE", "Reference number cannot be empty")
	}
	if len(referenceNo) > 50 {
		return nil, shared.NewValidationError("INVALID_REFERENCE", "Reference number cannot exceed 50 characters")
	}
	if strings.TrimSpace(supplier) == "" {
		return nil, shared.NewValidationError("INVALID_SUPPLIER", "Supplier cannot be empty")
	}
	if receiptDate.IsZero() {
		receiptDate = time.Now()
	}
	return &ReceivingSlip{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReferenceNo:       referenceNo,
		Supplier:          strings.TrimSpace(supplier),
		ReceiptDate:       receiptDate,
		Note:              note,
		Status:            SlipStatusDraft,
		Items:             make([]ReceivingSlipItem, 0),
	}, nil
}

// IsDraft reports whether the slip can still be edited
func (s *ReceivingSlip) IsDraft() bool {
	return s.Status == SlipStatusDraft
}

// EnsureDraft returns a conflict error unless the slip is a draft
func (s *ReceivingSlip) EnsureDraft() error {
	if !s.IsDraft() {
		return newNotDraftError(receivingSlipKind, s.ID, s.Status)
	}
	return nil
}

// AddItem appends a line to a draft slip
func (s *ReceivingSlip) AddItem(item ReceivingSlipItem) error {
	if err := s.EnsureDraft(); err != nil {
		return err
	}
	item.SlipID = s.ID
	s.Items = append(s.Items, item)
	s.Touch()
	return nil
}

// UpdateItem replaces the content of an existing line
func (s *ReceivingSlip) UpdateItem(itemID int64, replacement ReceivingSlipItem) error {
	if err := s.EnsureDraft(); err != nil {
		return err
	}
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			replacement.ID = itemID
			replacement.SlipID = s.ID
			s.Items[i] = replacement
			s.Touch()
			return nil
		}
	}
	return newItemNotFoundError(receivingSlipKind, s.ID, itemID)
}

// RemoveItem deletes a line from a draft slip
func (s *ReceivingSlip) RemoveItem(itemID int64) error {
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
	return newItemNotFoundError(receivingSlipKind, s.ID, itemID)
}

// TotalAmount returns the value of goods on the slip
func (s *ReceivingSlip) TotalAmount() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range s.Items {
		sum = sum.Add(item.LineTotal)
	}
	return sum
}

// PrepareReceipt checks the confirmation preconditions in order (draft, non-empty,
// every line matched to a product) and returns the quantities per product.
func (s *ReceivingSlip) PrepareReceipt() ([]StockReceipt, error) {
	if err := s.EnsureDraft(); err != nil {
		return nil, err
	}
	if len(s.Items) == 0 {
		return nil, shared.NewValidationError(CodeSlipEmpty, "Receiving slip %d has no items", s.ID)
	}

	var unresolved []int64
	receipts := make([]StockReceipt, 0, len(s.Items))
	for _, item := range s.Items {
		if item.ProductID == nil {
			unresolved = append(unresolved, item.ID)
			continue
		}
		receipts = append(receipts, StockReceipt{ProductID: *item.ProductID, Quantity: item.Quantity})
	}
	if len(unresolved) > 0 {
		return nil, shared.NewValidationError(CodeItemProductMissing,
			"Receiving slip %d has items without a product: %v", s.ID, unresolved).
			WithDetail("item_ids", unresolved)
	}

	return AggregateReceipts(receipts)
}

// Confirm marks the slip confirmed once its stock has been booked
func (s *ReceivingSlip) Confirm(at time.Time, changes []StockChange) error {
	if err := s.EnsureDraft(); err != nil {
		return err
	}
	s.Status = SlipStatusConfirmed
	s.ConfirmedAt = &at
	s.UpdatedAt = at
	s.AddDomainEvent(NewReceivingSlipConfirmedEvent(s, changes))
	return nil
}
