package trade

import (
	"context"

	"github.com/shopspring/decimal"
)

// Metrics records business counters for the order workflow
type Metrics interface {
	RecordOrderPlaced(ctx context.Context, paymentMethod string)
	RecordOrderTransition(ctx context.Context, from, to string)
	RecordTransitionRejected(ctx context.Context, code string)
	RecordInvoiceGenerated(ctx context.Context, total decimal.Decimal)
}

type noopMetrics struct{}

func (noopMetrics) RecordOrderPlaced(context.Context, string)               {}
func (noopMetrics) RecordOrderTransition(context.Context, string, string)   {}
func (noopMetrics) RecordTransitionRejected(context.Context, string)        {}
func (noopMetrics) RecordInvoiceGenerated(context.Context, decimal.Decimal) {}
