package telemetry

import (
	"context"
	"errors"

	appinv "github.com/shopdesk/backoffice/internal/application/inventory"
	apptrade "github.com/shopdesk/backoffice/internal/application/trade"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics set is built without a meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// ShopMetrics records the order workflow and warehouse counters.
// It satisfies the Metrics ports of both application services.
type ShopMetrics struct {
	ordersPlaced        *Counter
	orderTransitions    *Counter
	transitionsRejected *Counter
	invoicesIssued      *Counter
	invoiceAmount       *Histogram
	receivingConfirmed  *Counter
	unitsReceived       *Counter
	dispatchConfirmed   *Counter
}

var (
	_ apptrade.Metrics = (*ShopMetrics)(nil)
	_ appinv.Metrics   = (*ShopMetrics)(nil)
)

// NewShopMetrics creates every business instrument on meter
func NewShopMetrics(meter metric.Meter) (*ShopMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &ShopMetrics{}
	counters := []struct {
		target                  **Counter
		name, description, unit string
	}{
		{&m.ordersPlaced, "shop_order_placed_total", "Orders placed at checkout", "{orders}"},
		{&m.orderTransitions, "shop_order_transition_total", "Accepted order status changes", "{transitions}"},
		{&m.transitionsRejected, "shop_order_transition_rejected_total", "Order status changes refused by a guard", "{transitions}"},
		{&m.invoicesIssued, "shop_invoice_issued_total", "Invoices generated on completion", "{invoices}"},
		{&m.receivingConfirmed, "shop_receiving_confirmed_total", "Receiving slips booked into stock", "{slips}"},
		{&m.unitsReceived, "shop_stock_received_units_total", "Units added to stock by receiving slips", "{units}"},
		{&m.dispatchConfirmed, "shop_dispatch_confirmed_total", "Dispatch slips released by the warehouse", "{slips}"},
	}
	for _, c := range counters {
		counter, err := NewCounter(meter, c.name, c.description, c.unit)
		if err != nil {
			return nil, err
		}
		*c.target = counter
	}

	amount, err := NewHistogram(meter, HistogramOpts{
		Name:        "shop_invoice_amount",
		Description: "Invoice totals",
		Unit:        "{VND}",
		Boundaries:  InvoiceAmountBuckets,
	})
	if err != nil {
		return nil, err
	}
	m.invoiceAmount = amount

	return m, nil
}

// RecordOrderPlaced counts a checkout
func (m *ShopMetrics) RecordOrderPlaced(ctx context.Context, paymentMethod string) {
	m.ordersPlaced.Inc(ctx, AttrPaymentMethod.String(paymentMethod))
}

// RecordOrderTransition counts an accepted status change
func (m *ShopMetrics) RecordOrderTransition(ctx context.Context, from, to string) {
	m.orderTransitions.Inc(ctx, AttrFromStatus.String(from), AttrToStatus.String(to))
}

// RecordTransitionRejected counts a refused status change by rule code
func (m *ShopMetrics) RecordTransitionRejected(ctx context.Context, code string) {
	m.transitionsRejected.Inc(ctx, AttrRejectCode.String(code))
}

// RecordInvoiceGenerated counts an invoice and records its total
func (m *ShopMetrics) RecordInvoiceGenerated(ctx context.Context, total decimal.Decimal) {
	m.invoicesIssued.Inc(ctx)
	m.invoiceAmount.Record(ctx, total.InexactFloat64())
}

// RecordReceivingConfirmed counts a confirmed receipt and the units it booked
func (m *ShopMetrics) RecordReceivingConfirmed(ctx context.Context, products int, units int64) {
	if products == 0 {
		return
	}
	m.receivingConfirmed.Inc(ctx)
	m.unitsReceived.Add(ctx, units)
}

// RecordDispatchConfirmed counts a released dispatch slip
func (m *ShopMetrics) RecordDispatchConfirmed(ctx context.Context, kind string) {
	m.dispatchConfirmed.Inc(ctx, AttrDispatchKind.String(kind))
}
