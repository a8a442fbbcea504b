package trade

import (
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced        = "OrderPlaced"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
	EventTypeOrderDeleted       = "OrderDeleted"
)

// OrderPlacedEvent is raised when checkout creates an order
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID       int64           `json:"order_id"`
	CustomerID    int64           `json:"customer_id"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent. The order must already have an id.
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		CustomerID:      order.CustomerID,
		PaymentMethod:   order.PaymentMethod,
		TotalAmount:     order.TotalAmount,
	}
}

// OrderStatusChangedEvent is raised on every accepted status change
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID       int64         `json:"order_id"`
	FromStatus    OrderStatus   `json:"from_status"`
	ToStatus      OrderStatus   `json:"to_status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, from OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		FromStatus:      from,
		ToStatus:        order.Status,
		PaymentStatus:   order.PaymentStatus,
	}
}

// OrderDeletedEvent is raised when a cancelled order is removed
type OrderDeletedEvent struct {
	shared.BaseDomainEvent
	OrderID              int64 `json:"order_id"`
	RemovedDispatchSlips int   `json:"removed_dispatch_slips"`
}

// NewOrderDeletedEvent creates a new OrderDeletedEvent
func NewOrderDeletedEvent(order *Order, removedSlips int) *OrderDeletedEvent {
	return &OrderDeletedEvent{
		BaseDomainEvent:      shared.NewBaseDomainEvent(EventTypeOrderDeleted, AggregateTypeOrder, order.ID),
		OrderID:              order.ID,
		RemovedDispatchSlips: removedSlips,
	}
}
