package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/shopdesk/backoffice/internal/domain/catalog"
	"github.com/shopdesk/backoffice/internal/domain/inventory"
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// ReceivingSlipService manages supplier receipts and books them into stock
type ReceivingSlipService struct {
	txScope TransactionScope
	slips   inventory.ReceivingSlipRepository
	metrics Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewReceivingSlipService creates a new ReceivingSlipService.
// slips is used for reads outside of transactions.
func NewReceivingSlipService(txScope TransactionScope, slips inventory.ReceivingSlipRepository, logger *zap.Logger) *ReceivingSlipService {
	return &ReceivingSlipService{
		txScope: txScope,
		slips:   slips,
		metrics: noopMetrics{},
		logger:  logger,
		now:     time.Now,
	}
}

// SetMetrics sets the business metrics recorder
func (s *ReceivingSlipService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// Create creates a draft receiving slip. Reference numbers are unique.
func (s *ReceivingSlipService) Create(ctx context.Context, req CreateReceivingSlipRequest) (*ReceivingSlipResponse, error) {
	var receiptDate time.Time
	if req.ReceiptDate != nil {
		receiptDate = *req.ReceiptDate
	}
	slip, err := inventory.NewReceivingSlip(req.ReferenceNo, req.Supplier, receiptDate, req.Note)
	if err != nil {
		return nil, err
	}
	for _, input := range req.Items {
		item, err := toReceivingSlipItem(input)
		if err != nil {
			return nil, err
		}
		if err := slip.AddItem(item); err != nil {
			return nil, err
		}
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := ensureProductsExist(ctx, repos.Products(), receivingProductIDs(slip.Items)); err != nil {
			return err
		}
		exists, err := repos.ReceivingSlips().ExistsByReferenceNo(ctx, slip.ReferenceNo)
		if err != nil {
			return err
		}
		if exists {
			return inventory.NewDuplicateReferenceError(slip.ReferenceNo)
		}
		if err := repos.ReceivingSlips().Create(ctx, slip); err != nil {
			if errors.Is(err, shared.ErrDuplicate) {
				return inventory.NewDuplicateReferenceError(slip.ReferenceNo)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Receiving slip created",
		zap.Int64("slip_id", slip.ID),
		zap.String("reference_no", slip.ReferenceNo),
		zap.Int("items", len(slip.Items)))

	response := ToReceivingSlipResponse(slip)
	return &response, nil
}

// GetByID retrieves a receiving slip by ID
func (s *ReceivingSlipService) GetByID(ctx context.Context, slipID int64) (*ReceivingSlipResponse, error) {
	slip, err := s.slips.FindByID(ctx, slipID)
	if err != nil {
		return nil, err
	}
	response := ToReceivingSlipResponse(slip)
	return &response, nil
}

// AddItem appends a line to a draft slip
func (s *ReceivingSlipService) AddItem(ctx context.Context, slipID int64, input ReceivingSlipItemInput) (*ReceivingSlipResponse, error) {
	item, err := toReceivingSlipItem(input)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, slipID, item.ProductID, func(slip *inventory.ReceivingSlip) error {
		return slip.AddItem(item)
	})
}

// UpdateItem replaces a line of a draft slip, typically to match it to a product
func (s *ReceivingSlipService) UpdateItem(ctx context.Context, slipID, itemID int64, input ReceivingSlipItemInput) (*ReceivingSlipResponse, error) {
	item, err := toReceivingSlipItem(input)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, slipID, item.ProductID, func(slip *inventory.ReceivingSlip) error {
		return slip.UpdateItem(itemID, item)
	})
}

// RemoveItem deletes a line from a draft slip
func (s *ReceivingSlipService) RemoveItem(ctx context.Context, slipID, itemID int64) (*ReceivingSlipResponse, error) {
	return s.mutate(ctx, slipID, nil, func(slip *inventory.ReceivingSlip) error {
		return slip.RemoveItem(itemID)
	})
}

// Delete removes a draft slip
func (s *ReceivingSlipService) Delete(ctx context.Context, slipID int64) error {
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		slip, err := repos.ReceivingSlips().FindByIDForUpdate(ctx, slipID)
		if err != nil {
			return err
		}
		if err := slip.EnsureDraft(); err != nil {
			return err
		}
		return repos.ReceivingSlips().Delete(ctx, slipID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Receiving slip deleted", zap.Int64("slip_id", slipID))
	return nil
}

// Confirm books a draft slip into stock.
//
// Inside one transaction the slip row is locked, the preconditions are checked in order
// (exists, Draft, at least one item, every item matched to a product), quantities are
// summed per product, the stock ledger locks and increments every product, and the slip
// becomes Confirmed. Any failure leaves stock and slip untouched.
func (s *ReceivingSlipService) Confirm(ctx context.Context, slipID int64) (*ConfirmReceivingSlipResponse, error) {
	var (
		slip    *inventory.ReceivingSlip
		changes []inventory.StockChange
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		slip, err = repos.ReceivingSlips().FindByIDForUpdate(ctx, slipID)
		if err != nil {
			return err
		}
		receipts, err := slip.PrepareReceipt()
		if err != nil {
			return err
		}
		changes, err = repos.StockLedger().ApplyReceipt(ctx, slip.ReferenceNo, receipts)
		if err != nil {
			return err
		}
		if err := slip.Confirm(s.now(), changes); err != nil {
			return err
		}
		if err := repos.ReceivingSlips().Save(ctx, slip); err != nil {
			return err
		}
		if err := repos.Outbox().Append(ctx, slip.GetDomainEvents()...); err != nil {
			return err
		}
		slip.ClearDomainEvents()
		return nil
	})
	if err != nil {
		s.logger.Warn("Receiving slip not confirmed", zap.Int64("slip_id", slipID), zap.Error(err))
		return nil, err
	}

	response := &ConfirmReceivingSlipResponse{
		SlipID:           slip.ID,
		ReferenceNo:      slip.ReferenceNo,
		ConfirmedAt:      *slip.ConfirmedAt,
		AffectedProducts: make([]AffectedProduct, len(changes)),
	}
	var units int64
	for i, c := range changes {
		response.AffectedProducts[i] = AffectedProduct{ProductID: c.ProductID, AddedQty: c.AddedQty}
		units += c.AddedQty
	}

	s.metrics.RecordReceivingConfirmed(ctx, len(changes), units)
	s.logger.Info("Receiving slip confirmed",
		zap.Int64("slip_id", slip.ID),
		zap.String("reference_no", slip.ReferenceNo),
		zap.Int("products", len(changes)),
		zap.Int64("units", units))

	return response, nil
}

// mutate loads a draft slip under lock, applies fn and saves it
func (s *ReceivingSlipService) mutate(ctx context.Context, slipID int64, productID *int64, fn func(*inventory.ReceivingSlip) error) (*ReceivingSlipResponse, error) {
	var slip *inventory.ReceivingSlip
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		slip, err = repos.ReceivingSlips().FindByIDForUpdate(ctx, slipID)
		if err != nil {
			return err
		}
		if err := slip.EnsureDraft(); err != nil {
			return err
		}
		if productID != nil {
			if err := ensureProductsExist(ctx, repos.Products(), []int64{*productID}); err != nil {
				return err
			}
		}
		if err := fn(slip); err != nil {
			return err
		}
		return repos.ReceivingSlips().Save(ctx, slip)
	})
	if err != nil {
		return nil, err
	}
	response := ToReceivingSlipResponse(slip)
	return &response, nil
}

func toReceivingSlipItem(input ReceivingSlipItemInput) (inventory.ReceivingSlipItem, error) {
	return inventory.NewReceivingSlipItem(input.ProductID, input.Description, input.Quantity, input.UnitPrice)
}

func receivingProductIDs(items []inventory.ReceivingSlipItem) []int64 {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if item.ProductID != nil {
			ids = append(ids, *item.ProductID)
		}
	}
	return ids
}

// ensureProductsExist fails with a not found error naming every unknown product id
func ensureProductsExist(ctx context.Context, products catalog.ProductRepository, ids []int64) error {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	found, err := products.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if missing := catalog.MissingIDs(ids, found); len(missing) > 0 {
		return catalog.NewProductNotFoundError(missing)
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
