package trade

import (
	"context"
	"errors"
	"time"

	"github.com/shopdesk/backoffice/internal/domain/catalog"
	"github.com/shopdesk/backoffice/internal/domain/finance"
	"github.com/shopdesk/backoffice/internal/domain/partner"
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopdesk/backoffice/internal/domain/trade"
	"go.uber.org/zap"
)

// OrderService handles checkout and the order status workflow
type OrderService struct {
	txScope   TransactionScope
	orders    trade.OrderRepository
	invoices  finance.InvoiceRepository
	products  catalog.ProductRepository
	customers partner.CustomerRepository
	metrics   Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService.
// orders and invoices are used for reads outside of transactions.
func NewOrderService(
	txScope TransactionScope,
	orders trade.OrderRepository,
	invoices finance.InvoiceRepository,
	products catalog.ProductRepository,
	customers partner.CustomerRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		txScope:   txScope,
		orders:    orders,
		invoices:  invoices,
		products:  products,
		customers: customers,
		metrics:   noopMetrics{},
		logger:    logger,
		now:       time.Now,
	}
}

// SetMetrics sets the business metrics recorder
func (s *OrderService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// PlaceOrder creates a Pending order priced from the catalog
func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	customer, err := s.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(req.Items))
	seen := make(map[int64]struct{}, len(req.Items))
	for _, item := range req.Items {
		if _, ok := seen[item.ProductID]; !ok {
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if missing := catalog.MissingIDs(ids, products); len(missing) > 0 {
		return nil, catalog.NewProductNotFoundError(missing)
	}
	byID := make(map[int64]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]trade.OrderLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = trade.OrderLine{Product: byID[item.ProductID], Quantity: item.Quantity}
	}
	order, err := trade.NewOrder(customer, trade.PaymentMethod(req.PaymentMethod), req.ShippingFee, lines)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Orders().Create(ctx, order); err != nil {
			return err
		}
		order.AddDomainEvent(trade.NewOrderPlacedEvent(order))
		return s.flushEvents(ctx, repos, order)
	})
	if err != nil {
		s.logger.Error("Failed to place order", zap.Int64("customer_id", req.CustomerID), zap.Error(err))
		return nil, err
	}

	s.metrics.RecordOrderPlaced(ctx, string(order.PaymentMethod))
	s.logger.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.String("total", order.TotalAmount.String()))

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, orderID int64) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetInvoice retrieves the invoice of an order
func (s *OrderService) GetInvoice(ctx context.Context, orderID int64) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// ChangeStatus moves an order to the status named by the request label.
//
// The label is normalized first, then inside one transaction the order is loaded,
// the payment and lifecycle guards run, the confirmed dispatch slip ORD-{id} is required
// for every target except Cancelled, and the new status is written. Reaching Completed
// without an invoice generates and stores the invoice in the same transaction.
func (s *OrderService) ChangeStatus(ctx context.Context, orderID int64, req ChangeOrderStatusRequest) (*OrderStatusChangeResponse, error) {
	target, err := trade.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var (
		order   *trade.Order
		invoice *finance.Invoice
		from    trade.OrderStatus
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		from = o.Status

		if err := o.CheckTransition(target); err != nil {
			return err
		}
		released := true
		if target.RequiresDispatchRelease() {
			released, err = repos.DispatchSlips().ExistsConfirmed(ctx, trade.SalesDispatchReference(o.ID))
			if err != nil {
				return err
			}
		}
		if err := o.TransitionTo(target, released); err != nil {
			return err
		}

		if o.NeedsInvoice() {
			inv, err := finance.GenerateInvoice(o, s.now())
			if err != nil {
				return err
			}
			if err := repos.Invoices().Create(ctx, inv); err != nil {
				return err
			}
			o.AttachInvoice(inv.ID)
			o.AddDomainEvent(finance.NewInvoiceGeneratedEvent(inv))
			invoice = inv
		}

		if err := repos.Orders().Save(ctx, o); err != nil {
			return err
		}
		order = o
		return s.flushEvents(ctx, repos, o)
	})
	if err != nil {
		s.logRejection(ctx, orderID, target, err)
		return nil, err
	}

	s.metrics.RecordOrderTransition(ctx, string(from), string(order.Status))
	fields := []zap.Field{
		zap.Int64("order_id", order.ID),
		zap.String("from", string(from)),
		zap.String("to", string(order.Status)),
	}
	if invoice != nil {
		s.metrics.RecordInvoiceGenerated(ctx, invoice.Total)
		fields = append(fields, zap.String("invoice_code", invoice.Code))
	}
	s.logger.Info("Order status changed", fields...)

	response := &OrderStatusChangeResponse{
		OrderID:        order.ID,
		PreviousStatus: string(from),
		Status:         string(order.Status),
		PaymentStatus:  string(order.PaymentStatus),
	}
	if invoice != nil {
		inv := ToInvoiceResponse(invoice)
		response.Invoice = &inv
	}
	return response, nil
}

// Delete removes a cancelled, never invoiced order together with its dispatch slips
func (s *OrderService) Delete(ctx context.Context, orderID int64) error {
	var removed int64
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.CheckDeletable(); err != nil {
			return err
		}
		removed, err = repos.DispatchSlips().DeleteByReference(ctx, trade.SalesDispatchReference(order.ID))
		if err != nil {
			return err
		}
		if err := repos.Orders().SoftDelete(ctx, order.ID); err != nil {
			return err
		}
		return repos.Outbox().Append(ctx, trade.NewOrderDeletedEvent(order, int(removed)))
	})
	if err != nil {
		s.logger.Warn("Order not deleted", zap.Int64("order_id", orderID), zap.Error(err))
		return err
	}

	s.logger.Info("Order deleted", zap.Int64("order_id", orderID), zap.Int64("removed_dispatch_slips", removed))
	return nil
}

func (s *OrderService) flushEvents(ctx context.Context, repos TransactionalRepositories, order *trade.Order) error {
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return nil
	}
	if err := repos.Outbox().Append(ctx, events...); err != nil {
		return err
	}
	order.ClearDomainEvents()
	return nil
}

func (s *OrderService) logRejection(ctx context.Context, orderID int64, target trade.OrderStatus, err error) {
	var de *shared.DomainError
	if errors.As(err, &de) {
		s.metrics.RecordTransitionRejected(ctx, de.Code)
		s.logger.Warn("Order status change rejected",
			zap.Int64("order_id", orderID),
			zap.String("target", string(target)),
			zap.String("code", de.Code),
			zap.String("reason", de.Message))
		return
	}
	s.logger.Error("Order status change failed",
		zap.Int64("order_id", orderID),
		zap.String("target", string(target)),
		zap.Error(err))
}
