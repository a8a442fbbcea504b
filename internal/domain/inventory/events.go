package inventory

import (
	"github.com/shopdesk/backoffice/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeReceivingSlip = "ReceivingSlip"
	AggregateTypeDispatchSlip  = "DispatchSlip"
)

// Event type constants
const (
	EventTypeReceivingSlipConfirmed = "ReceivingSlipConfirmed"
	EventTypeDispatchSlipConfirmed  = "DispatchSlipConfirmed"
)

// ReceivingSlipConfirmedEvent is raised when received goods are booked into stock
type ReceivingSlipConfirmedEvent struct {
	shared.BaseDomainEvent
	SlipID      int64         `json:"slip_id"`
	ReferenceNo string        `json:"reference_no"`
	Changes     []StockChange `json:"changes"`
}

// NewReceivingSlipConfirmedEvent creates a new ReceivingSlipConfirmedEvent
func NewReceivingSlipConfirmedEvent(slip *ReceivingSlip, changes []StockChange) *ReceivingSlipConfirmedEvent {
	return &ReceivingSlipConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceivingSlipConfirmed, AggregateTypeReceivingSlip, slip.ID),
		SlipID:          slip.ID,
		ReferenceNo:     slip.ReferenceNo,
		Changes:         changes,
	}
}

// DispatchSlipConfirmedEvent is raised when the warehouse releases goods
type DispatchSlipConfirmedEvent struct {
	shared.BaseDomainEvent
	SlipID      int64        `json:"slip_id"`
	ReferenceNo string       `json:"reference_no"`
	Kind        DispatchKind `json:"kind"`
	OrderID     *int64       `json:"order_id,omitempty"`
}

// NewDispatchSlipConfirmedEvent creates a new DispatchSlipConfirmedEvent
func NewDispatchSlipConfirmedEvent(slip *DispatchSlip) *DispatchSlipConfirmedEvent {
	return &DispatchSlipConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDispatchSlipConfirmed, AggregateTypeDispatchSlip, slip.ID),
		SlipID:          slip.ID,
		ReferenceNo:     slip.ReferenceNo,
		Kind:            slip.Kind,
		OrderID:         slip.OrderID,
	}
}
