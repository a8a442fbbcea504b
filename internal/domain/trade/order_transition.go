package trade

import (
	"github.com/shopdesk/backoffice/internal/domain/shared"
)

// Guard error codes
const (
	CodePaymentMethodMismatch = "PAYMENT_METHOD_MISMATCH"
	CodeCODNotPaid            = "COD_NOT_PAID"
	CodeOrderCompleted        = "ORDER_COMPLETED"
	CodeWarehouseNotConfirmed = "WAREHOUSE_NOT_CONFIRMED"
)

type transitionOutcome int

const (
	allow transitionOutcome = iota
	rejectPaymentMismatch
	rejectCODNotPaid
	rejectTerminal
)

// transitions lists the outcome of every (payment method, current, target) triple.
// Payment method rules take precedence over the terminal rule.
var transitions = map[PaymentMethod]map[OrderStatus]map[OrderStatus]transitionOutcome{
	PaymentMethodCOD: {
		OrderStatusPending: {
			OrderStatusPending: allow, OrderStatusShipping: allow, OrderStatusPaid: allow,
			OrderStatusCompleted: rejectCODNotPaid, OrderStatusCancelled: allow,
		},
		OrderStatusShipping: {
			OrderStatusPending: allow, OrderStatusShipping: allow, OrderStatusPaid: allow,
			OrderStatusCompleted: rejectCODNotPaid, OrderStatusCancelled: allow,
		},
		OrderStatusPaid: {
			OrderStatusPending: allow, OrderStatusShipping: allow, OrderStatusPaid: allow,
			OrderStatusCompleted: allow, OrderStatusCancelled: allow,
		},
		OrderStatusCompleted: {
			OrderStatusPending: rejectTerminal, OrderStatusShipping: rejectTerminal, OrderStatusPaid: rejectTerminal,
			OrderStatusCompleted: rejectCODNotPaid, OrderStatusCancelled: rejectTerminal,
		},
		OrderStatusCancelled: {
			OrderStatusPending: allow, OrderStatusShipping: allow, OrderStatusPaid: allow,
			OrderStatusCompleted: rejectCODNotPaid, OrderStatusCancelled: allow,
		},
	},
	PaymentMethodQR: {
		OrderStatusPending: {
			OrderStatusPending: allow, OrderStatusShipping: allow, OrderStatusPaid: rejectPaymentMismatch,
			OrderStatusCompleted: allow, OrderStatusCancelled: allow,
		},
		OrderStatusShipping: {
			OrderStatusPending: allow, OrderStatusShipping: allow, OrderStatusPaid: rejectPaymentMismatch,
			OrderStatusCompleted: allow, OrderStatusCancelled: allow,
		},
		OrderStatusPaid: {
			OrderStatusPending: allow, OrderStatusShipping: allow, OrderStatusPaid: rejectPaymentMismatch,
			OrderStatusCompleted: allow, OrderStatusCancelled: allow,
		},
		OrderStatusCompleted: {
			OrderStatusPending: rejectTerminal, OrderStatusShipping: rejectTerminal, OrderStatusPaid: rejectPaymentMismatch,
			OrderStatusCompleted: allow, OrderStatusCancelled: rejectTerminal,
		},
		OrderStatusCancelled: {
			OrderStatusPending: allow, OrderStatusShipping: allow, OrderStatusPaid: rejectPaymentMismatch,
			OrderStatusCompleted: allow, OrderStatusCancelled: allow,
		},
	},
}

// CheckTransition evaluates the payment and lifecycle guards for moving the order to target.
// It never touches the order and needs no I/O; the dispatch gate is checked by TransitionTo.
func (o *Order) CheckTransition(target OrderStatus) error {
	rows, ok := transitions[o.PaymentMethod]
	if !ok {
		return shared.NewValidationError("INVALID_PAYMENT_METHOD", "Unknown payment method %q", o.PaymentMethod)
	}
	outcome, ok := rows[o.Status][target]
	if !ok {
		return shared.NewValidationError("INVALID_STATUS", "Unknown order status transition %s -> %s", o.Status, target)
	}

	switch outcome {
	case rejectPaymentMismatch:
		return shared.NewConflictError(CodePaymentMethodMismatch,
			"Order %d is paid by %s and cannot be marked %s", o.ID, o.PaymentMethod, target)
	case rejectCODNotPaid:
		return shared.NewConflictError(CodeCODNotPaid,
			"Cash on delivery order %d must be %s before it can be %s", o.ID, OrderStatusPaid, target)
	case rejectTerminal:
		return shared.NewConflictError(CodeOrderCompleted,
			"Order %d is %s and its status can no longer change", o.ID, o.Status)
	}
	return nil
}

// NewWarehouseNotConfirmedError reports a missing confirmed dispatch slip
func NewWarehouseNotConfirmedError(orderID int64, reference string) *shared.DomainError {
	return shared.NewConflictError(CodeWarehouseNotConfirmed,
		"Order %d has no confirmed dispatch slip %s", orderID, reference).
		WithDetail("reference_no", reference)
}
