package inventory

import (
	"time"

	"github.com/shopdesk/backoffice/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// ==================== Receiving Slip DTOs ====================

// CreateReceivingSlipRequest represents a request to create a draft receiving slip
type CreateReceivingSlipRequest struct {
	ReferenceNo string                   `json:"reference_no" binding:"required,min=1,max=50"`
	Supplier    string                   `json:"supplier" binding:"required,min=1,max=200"`
	ReceiptDate *time.Time               `json:"receipt_date"`
	Note        string                   `json:"note" binding:"max=500"`
	Items       []ReceivingSlipItemInput `json:"items" binding:"omitempty,dive"`
}

// ReceivingSlipItemInput represents a receiving line in create/update requests.
// ProductID may be left empty until the line is matched to the catalog.
type ReceivingSlipItemInput struct {
	ProductID   *int64          `json:"product_id" binding:"omitempty,gt=0"`
	Description string          `json:"description" binding:"max=200"`
	Quantity    int64           `json:"quantity" binding:"required,gt=0,max=1000000000"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// ReceivingSlipItemResponse represents a receiving line in API responses
type ReceivingSlipItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   *int64          `json:"product_id"`
	Description string          `json:"description,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// ReceivingSlipResponse represents a receiving slip in API responses
type ReceivingSlipResponse struct {
	ID          int64                       `json:"id"`
	ReferenceNo string                      `json:"reference_no"`
	Supplier    string                      `json:"supplier"`
	ReceiptDate time.Time                   `json:"receipt_date"`
	Note        string                      `json:"note,omitempty"`
	Status      string                      `json:"status"`
	ConfirmedAt *time.Time                  `json:"confirmed_at,omitempty"`
	TotalAmount decimal.Decimal             `json:"total_amount"`
	Items       []ReceivingSlipItemResponse `json:"items"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// AffectedProduct is the stock added to one product by a confirmation
type AffectedProduct struct {
	ProductID int64 `json:"product_id"`
	AddedQty  int64 `json:"added_qty"`
}

// ConfirmReceivingSlipResponse is the outcome of a receiving confirmation
type ConfirmReceivingSlipResponse struct {
	SlipID           int64             `json:"slip_id"`
	ReferenceNo      string            `json:"reference_no"`
	ConfirmedAt      time.Time         `json:"confirmed_at"`
	AffectedProducts []AffectedProduct `json:"affected_products"`
}

// ToReceivingSlipResponse converts a domain ReceivingSlip to ReceivingSlipResponse
func ToReceivingSlipResponse(s *inventory.ReceivingSlip) ReceivingSlipResponse {
	items := make([]ReceivingSlipItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = ReceivingSlipItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}
	return ReceivingSlipResponse{
		ID:          s.ID,
		ReferenceNo: s.ReferenceNo,
		Supplier:    s.Supplier,
		ReceiptDate: s.ReceiptDate,
		Note:        s.Note,
		Status:      string(s.Status),
		ConfirmedAt: s.ConfirmedAt,
		TotalAmount: s.TotalAmount(),
		Items:       items,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ==================== Dispatch Slip DTOs ====================

// CreateDispatchSlipRequest represents a request to create a draft dispatch slip.
// Sales slips name the order; project slips name the project reference.
type CreateDispatchSlipRequest struct {
	Kind       string                  `json:"kind" binding:"required,oneof=Sales Project"`
	OrderID    *int64                  `json:"order_id" binding:"omitempty,gt=0"`
	ProjectRef string                  `json:"project_ref" binding:"max=50"`
	Note       string                  `json:"note" binding:"max=500"`
	Items      []DispatchSlipItemInput `json:"items" binding:"omitempty,dive"`
}

// DispatchSlipItemInput represents a dispatch line
type DispatchSlipItemInput struct {
	ProductID int64           `json:"product_id" binding:"required,gt=0"`
	Quantity  int64           `json:"quantity" binding:"required,gt=0,max=1000000000"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// DispatchSlipItemResponse represents a dispatch line in API responses
type DispatchSlipItemResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// DispatchSlipResponse represents a dispatch slip in API responses
type DispatchSlipResponse struct {
	ID          int64                      `json:"id"`
	Kind        string                     `json:"kind"`
	ReferenceNo string                     `json:"reference_no"`
	OrderID     *int64                     `json:"order_id,omitempty"`
	Note        string                     `json:"note,omitempty"`
	Status      string                     `json:"status"`
	ConfirmedAt *time.Time                 `json:"confirmed_at,omitempty"`
	Items       []DispatchSlipItemResponse `json:"items"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// ToDispatchSlipResponse converts a domain DispatchSlip to DispatchSlipResponse
func ToDispatchSlipResponse(s *inventory.DispatchSlip) DispatchSlipResponse {
	items := make([]DispatchSlipItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = DispatchSlipItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return DispatchSlipResponse{
		ID:          s.ID,
		Kind:        string(s.Kind),
		ReferenceNo: s.ReferenceNo,
		OrderID:     s.OrderID,
		Note:        s.Note,
		Status:      string(s.Status),
		ConfirmedAt: s.ConfirmedAt,
		Items:       items,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
