package trade

import (
	"strings"

	"github.com/shopdesk/backoffice/internal/domain/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// OrderStatus is the lifecycle state of an order. The set is closed.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipping  OrderStatus = "Shipping"
	OrderStatusPaid      OrderStatus = "Paid"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// OrderStatuses lists every status in lifecycle order
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusShipping,
	OrderStatusPaid,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// String returns the canonical name
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known statuses
func (s OrderStatus) IsValid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no other status may follow s
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted
}

// RequiresDispatchRelease reports whether moving into s needs a confirmed dispatch slip
func (s OrderStatus) RequiresDispatchRelease() bool {
	return s != OrderStatusCancelled
}

// statusSynonyms maps localized or legacy labels to canonical statuses.
// Keys are normalized with normalizeLabel when the package loads.
var statusSynonyms = map[string]OrderStatus{
	"chờ xử lý":    OrderStatusPending,
	"chờ xác nhận": OrderStatusPending,

	"đang giao":       OrderStatusShipping,
	"đang giao hàng":  OrderStatusShipping,
	"đang vận chuyển": OrderStatusShipping,
	"shipped":         OrderStatusShipping,

	"đã thanh toán": OrderStatusPaid,
	"paid đã":       OrderStatusPaid,

	"hoàn thành":    OrderStatusCompleted,
	"đã hoàn thành": OrderStatusCompleted,
	"đã giao":       OrderStatusCompleted,
	"complete":      OrderStatusCompleted,

	"đã hủy":   OrderStatusCancelled,
	"đã huỷ":   OrderStatusCancelled,
	"hủy":      OrderStatusCancelled,
	"huỷ":      OrderStatusCancelled,
	"canceled": OrderStatusCancelled,
}

var labelIndex = buildLabelIndex()

func buildLabelIndex() map[string]OrderStatus {
	index := make(map[string]OrderStatus, len(statusSynonyms)+len(OrderStatuses))
	for _, s := range OrderStatuses {
		index[normalizeLabel(string(s))] = s
	}
	for label, s := range statusSynonyms {
		index[normalizeLabel(label)] = s
	}
	return index
}

// normalizeLabel composes Unicode (NFC), collapses whitespace and case-folds.
// A Caser holds state, so a fresh one is built per call.
func normalizeLabel(label string) string {
	composed := norm.NFC.String(label)
	collapsed := strings.Join(strings.Fields(composed), " ")
	return cases.Fold().String(collapsed)
}

// ParseOrderStatus maps a free-form label onto a canonical status.
// Canonical English names match case-insensitively; localized synonyms are looked up in a fixed table.
func ParseOrderStatus(label string) (OrderStatus, error) {
	if s, ok := labelIndex[normalizeLabel(label)]; ok {
		return s, nil
	}
	return "", shared.NewValidationError("INVALID_STATUS", "Unknown order status %q", label).
		WithDetail("status", label)
}
