package inventory

import "context"

// Metrics records business counters for warehouse slips
type Metrics interface {
	RecordReceivingConfirmed(ctx context.Context, products int, units int64)
	RecordDispatchConfirmed(ctx context.Context, kind string)
}

type noopMetrics struct{}

func (noopMetrics) RecordReceivingConfirmed(context.Context, int, int64) {}
func (noopMetrics) RecordDispatchConfirmed(context.Context, string)      {}
