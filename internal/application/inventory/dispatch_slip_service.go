package inventory

import (
	"context"
	"time"

	"github.com/shopdesk/backoffice/internal/domain/inventory"
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopdesk/backoffice/internal/domain/trade"
	"go.uber.org/zap"
)

// DispatchSlipService manages warehouse releases. Confirming a sales slip
// is what allows its order to move past Pending. Every mutation locks the
// slip row first.
type DispatchSlipService struct {
	txScope TransactionScope
	slips   inventory.DispatchSlipRepository
	orders  trade.OrderRepository
	metrics Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewDispatchSlipService creates a new DispatchSlipService
func NewDispatchSlipService(
	txScope TransactionScope,
	slips inventory.DispatchSlipRepository,
	orders trade.OrderRepository,
	logger *zap.Logger,
) *DispatchSlipService {
	return &DispatchSlipService{
		txScope: txScope,
		slips:   slips,
		orders:  orders,
		metrics: noopMetrics{},
		logger:  logger,
		now:     time.Now,
	}
}

// SetMetrics sets the business metrics recorder
func (s *DispatchSlipService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// Create creates a draft dispatch slip for a sales order or a project
func (s *DispatchSlipService) Create(ctx context.Context, req CreateDispatchSlipRequest) (*DispatchSlipResponse, error) {
	var (
		slip *inventory.DispatchSlip
		err  error
	)
	switch inventory.DispatchKind(req.Kind) {
	case inventory.DispatchKindSales:
		if req.OrderID == nil {
			return nil, shared.NewValidationError("INVALID_ORDER", "Sales dispatch slips require an order id")
		}
		if _, err := s.orders.FindByID(ctx, *req.OrderID); err != nil {
			return nil, err
		}
		slip, err = inventory.NewSalesDispatchSlip(*req.OrderID, req.Note)
	case inventory.DispatchKindProject:
		slip, err = inventory.NewProjectDispatchSlip(req.ProjectRef, req.Note)
	default:
		return nil, shared.NewValidationError("INVALID_DISPATCH_KIND", "Unknown dispatch kind %q", req.Kind)
	}
	if err != nil {
		return nil, err
	}

	for _, input := range req.Items {
		item, err := inventory.NewDispatchSlipItem(input.ProductID, input.Quantity, input.UnitPrice)
		if err != nil {
			return nil, err
		}
		if err := slip.AddItem(item); err != nil {
			return nil, err
		}
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		ids := make([]int64, len(slip.Items))
		for i, item := range slip.Items {
			ids[i] = item.ProductID
		}
		if err := ensureProductsExist(ctx, repos.Products(), ids); err != nil {
			return err
		}
		return repos.DispatchSlips().Create(ctx, slip)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Dispatch slip created",
		zap.Int64("slip_id", slip.ID),
		zap.String("kind", string(slip.Kind)),
		zap.String("reference_no", slip.ReferenceNo))

	response := ToDispatchSlipResponse(slip)
	return &response, nil
}

// GetByID retrieves a dispatch slip by ID
func (s *DispatchSlipService) GetByID(ctx context.Context, slipID int64) (*DispatchSlipResponse, error) {
	slip, err := s.slips.FindByID(ctx, slipID)
	if err != nil {
		return nil, err
	}
	response := ToDispatchSlipResponse(slip)
	return &response, nil
}

// AddItem appends a line to a draft slip
func (s *DispatchSlipService) AddItem(ctx context.Context, slipID int64, input DispatchSlipItemInput) (*DispatchSlipResponse, error) {
	item, err := inventory.NewDispatchSlipItem(input.ProductID, input.Quantity, input.UnitPrice)
	if err != nil {
		return nil, err
	}

	var slip *inventory.DispatchSlip
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		slip, err = repos.DispatchSlips().FindByIDForUpdate(ctx, slipID)
		if err != nil {
			return err
		}
		if err := slip.EnsureDraft(); err != nil {
			return err
		}
		if err := ensureProductsExist(ctx, repos.Products(), []int64{item.ProductID}); err != nil {
			return err
		}
		if err := slip.AddItem(item); err != nil {
			return err
		}
		return repos.DispatchSlips().Save(ctx, slip)
	})
	if err != nil {
		return nil, err
	}
	response := ToDispatchSlipResponse(slip)
	return &response, nil
}

// RemoveItem deletes a line from a draft slip
func (s *DispatchSlipService) RemoveItem(ctx context.Context, slipID, itemID int64) (*DispatchSlipResponse, error) {
	var slip *inventory.DispatchSlip
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		slip, err = repos.DispatchSlips().FindByIDForUpdate(ctx, slipID)
		if err != nil {
			return err
		}
		if err := slip.RemoveItem(itemID); err != nil {
			return err
		}
		return repos.DispatchSlips().Save(ctx, slip)
	})
	if err != nil {
		return nil, err
	}
	response := ToDispatchSlipResponse(slip)
	return &response, nil
}

// Confirm releases the goods of a draft slip. Stock levels are not changed.
func (s *DispatchSlipService) Confirm(ctx context.Context, slipID int64) (*DispatchSlipResponse, error) {
	var slip *inventory.DispatchSlip
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		slip, err = repos.DispatchSlips().FindByIDForUpdate(ctx, slipID)
		if err != nil {
			return err
		}
		if err := slip.Confirm(s.now()); err != nil {
			return err
		}
		if err := repos.DispatchSlips().Save(ctx, slip); err != nil {
			return err
		}
		if err := repos.Outbox().Append(ctx, slip.GetDomainEvents()...); err != nil {
			return err
		}
		slip.ClearDomainEvents()
		return nil
	})
	if err != nil {
		s.logger.Warn("Dispatch slip not confirmed", zap.Int64("slip_id", slipID), zap.Error(err))
		return nil, err
	}

	s.metrics.RecordDispatchConfirmed(ctx, string(slip.Kind))
	s.logger.Info("Dispatch slip confirmed",
		zap.Int64("slip_id", slip.ID),
		zap.String("reference_no", slip.ReferenceNo))

	response := ToDispatchSlipResponse(slip)
	return &response, nil
}

// Delete removes a draft project slip. Sales slips are deleted with their order.
func (s *DispatchSlipService) Delete(ctx context.Context, slipID int64) error {
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		slip, err := repos.DispatchSlips().FindByIDForUpdate(ctx, slipID)
		if err != nil {
			return err
		}
		if err := slip.CheckDirectDelete(); err != nil {
			return err
		}
		return repos.DispatchSlips().Delete(ctx, slipID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Dispatch slip deleted", zap.Int64("slip_id", slipID))
	return nil
}
