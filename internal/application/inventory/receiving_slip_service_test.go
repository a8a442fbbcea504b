package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopdesk/backoffice/internal/domain/catalog"
	"github.com/shopdesk/backoffice/internal/domain/inventory"
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 6, 2, 8, 30, 0, 0, time.UTC)

type fixture struct {
	receiving *ReceivingSlipService
	dispatch  *DispatchSlipService
	slips     *MockReceivingSlipRepository
	dispatchs *MockDispatchSlipRepository
	ledger    *MockStockLedger
	products  *MockProductRepository
	outbox    *MockOutboxRepository
	orders    *MockOrderRepository
}

func newFixture() *fixture {
	f := &fixture{
		slips:     new(MockReceivingSlipRepository),
		dispatchs: new(MockDispatchSlipRepository),
		ledger:    new(MockStockLedger),
		products:  new(MockProductRepository),
		outbox:    new(MockOutboxRepository),
		orders:    new(MockOrderRepository),
	}
	scope := NewNoOpTransactionScope(f.slips, f.dispatchs, f.ledger, f.products, f.outbox)
	f.receiving = NewReceivingSlipService(scope, f.slips, zap.NewNop())
	f.receiving.now = func() time.Time { return fixedNow }
	f.dispatch = NewDispatchSlipService(scope, f.dispatchs, f.orders, zap.NewNop())
	f.dispatch.now = func() time.Time { return fixedNow }
	return f
}

func ptr(v int64) *int64 { return &v }

func draftReceivingSlip(id int64, items ...inventory.ReceivingSlipItem) *inventory.ReceivingSlip {
	slip := &inventory.ReceivingSlip{
		ReferenceNo: "PN-0042",
		Supplier:    "Saigon Tea Co",
		Status:      inventory.SlipStatusDraft,
		Items:       items,
	}
	slip.ID = id
	return slip
}

func receivingItem(id int64, productID *int64, qty int64) inventory.ReceivingSlipItem {
	return inventory.ReceivingSlipItem{
		ID:        id,
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: decimal.NewFromInt(1000),
		LineTotal: decimal.NewFromInt(1000 * qty),
	}
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *shared.DomainError
	require.True(t, errors.As(err, &de), "expected domain error, got %v", err)
	return de.Code
}

func TestConfirmReceivingSlip_AggregatesPerProduct(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	slip := draftReceivingSlip(11,
		receivingItem(1, ptr(3), 2),
		receivingItem(2, ptr(1), 5),
		receivingItem(3, ptr(3), 4),
	)
	receipts := []inventory.StockReceipt{{ProductID: 1, Quantity: 5}, {ProductID: 3, Quantity: 6}}
	changes := []inventory.StockChange{
		{ProductID: 1, AddedQty: 5, BalanceAfter: 15},
		{ProductID: 3, AddedQty: 6, BalanceAfter: 6},
	}

	f.slips.On("FindByIDForUpdate", ctx, int64(11)).Return(slip, nil)
	f.ledger.On("ApplyReceipt", ctx, "PN-0042", receipts).Return(changes, nil)
	f.slips.On("Save", ctx, slip).Return(nil)
	f.outbox.On("Append", ctx, mock.Anything).Return(nil)

	resp, err := f.receiving.Confirm(ctx, 11)
	require.NoError(t, err)

	assert.Equal(t, int64(11), resp.SlipID)
	assert.Equal(t, "PN-0042", resp.ReferenceNo)
	assert.Equal(t, fixedNow, resp.ConfirmedAt)
	assert.Equal(t, []AffectedProduct{{ProductID: 1, AddedQty: 5}, {ProductID: 3, AddedQty: 6}}, resp.AffectedProducts)
	assert.Equal(t, inventory.SlipStatusConfirmed, slip.Status)
	assert.Empty(t, slip.GetDomainEvents())

	f.ledger.AssertExpectations(t)
	f.slips.AssertExpectations(t)
	f.outbox.AssertExpectations(t)
}

func TestConfirmReceivingSlip_Preconditions(t *testing.T) {
	confirmedAt := fixedNow.Add(-time.Hour)
	tests := []struct {
		name string
		slip func() *inventory.ReceivingSlip
		code string
	}{
		{
			name: "already confirmed",
			slip: func() *inventory.ReceivingSlip {
				s := draftReceivingSlip(11, receivingItem(1, ptr(3), 2))
				s.Status = inventory.SlipStatusConfirmed
				s.ConfirmedAt = &confirmedAt
				return s
			},
			code: inventory.CodeSlipNotDraft,
		},
		{
			name: "no items",
			slip: func() *inventory.ReceivingSlip { return draftReceivingSlip(11) },
			code: inventory.CodeSlipEmpty,
		},
		{
			name: "unmatched item",
			slip: func() *inventory.ReceivingSlip {
				return draftReceivingSlip(11, receivingItem(1, ptr(3), 2), receivingItem(2, nil, 1))
			},
			code: inventory.CodeItemProductMissing,
		},
		{
			name: "confirmed takes precedence over empty",
			slip: func() *inventory.ReceivingSlip {
				s := draftReceivingSlip(11)
				s.Status = inventory.SlipStatusConfirmed
				return s
			},
			code: inventory.CodeSlipNotDraft,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			f.slips.On("FindByIDForUpdate", ctx, int64(11)).Return(tt.slip(), nil)

			resp, err := f.receiving.Confirm(ctx, 11)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, tt.code, domainCode(t, err))
			f.ledger.AssertNotCalled(t, "ApplyReceipt", mock.Anything, mock.Anything, mock.Anything)
			f.slips.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestConfirmReceivingSlip_MissingProductAborts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	slip := draftReceivingSlip(11, receivingItem(1, ptr(3), 2), receivingItem(2, ptr(99), 1))

	f.slips.On("FindByIDForUpdate", ctx, int64(11)).Return(slip, nil)
	f.ledger.On("ApplyReceipt", ctx, "PN-0042", mock.Anything).Return(nil, catalog.NewProductNotFoundError([]int64{99}))

	_, err := f.receiving.Confirm(ctx, 11)
	require.Error(t, err)
	assert.Equal(t, shared.KindNotFound, shared.KindOf(err))
	assert.Equal(t, inventory.SlipStatusDraft, slip.Status)
	f.slips.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.outbox.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestConfirmReceivingSlip_NotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.slips.On("FindByIDForUpdate", ctx, int64(404)).Return(nil, shared.ErrNotFound)

	_, err := f.receiving.Confirm(ctx, 404)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateReceivingSlip(t *testing.T) {
	ctx := context.Background()
	req := CreateReceivingSlipRequest{
		ReferenceNo: " PN-0042 ",
		Supplier:    "Saigon Tea Co",
		Items: []ReceivingSlipItemInput{
			{ProductID: ptr(3), Quantity: 2, UnitPrice: decimal.NewFromInt(12000)},
			{Description: "unlabelled carton", Quantity: 1, UnitPrice: decimal.NewFromInt(5000)},
		},
	}

	t.Run("creates draft", func(t *testing.T) {
		f := newFixture()
		f.products.On("FindByIDs", ctx, []int64{3}).Return([]catalog.Product{{BaseAggregateRoot: productRoot(3)}}, nil)
		f.slips.On("ExistsByReferenceNo", ctx, "PN-0042").Return(false, nil)
		f.slips.On("Create", ctx, mock.AnythingOfType("*inventory.ReceivingSlip")).Return(nil)

		resp, err := f.receiving.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "PN-0042", resp.ReferenceNo)
		assert.Equal(t, string(inventory.SlipStatusDraft), resp.Status)
		assert.Len(t, resp.Items, 2)
		assert.True(t, decimal.NewFromInt(29000).Equal(resp.TotalAmount))
	})

	t.Run("duplicate reference", func(t *testing.T) {
		f := newFixture()
		f.products.On("FindByIDs", ctx, []int64{3}).Return([]catalog.Product{{BaseAggregateRoot: productRoot(3)}}, nil)
		f.slips.On("ExistsByReferenceNo", ctx, "PN-0042").Return(true, nil)

		_, err := f.receiving.Create(ctx, req)
		require.Error(t, err)
		assert.Equal(t, inventory.CodeDuplicateReference, domainCode(t, err))
		f.slips.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unique index race", func(t *testing.T) {
		f := newFixture()
		f.products.On("FindByIDs", ctx, []int64{3}).Return([]catalog.Product{{BaseAggregateRoot: productRoot(3)}}, nil)
		f.slips.On("ExistsByReferenceNo", ctx, "PN-0042").Return(false, nil)
		f.slips.On("Create", ctx, mock.Anything).Return(shared.ErrDuplicate)

		_, err := f.receiving.Create(ctx, req)
		assert.Equal(t, inventory.CodeDuplicateReference, domainCode(t, err))
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newFixture()
		f.products.On("FindByIDs", ctx, []int64{3}).Return([]catalog.Product{}, nil)

		_, err := f.receiving.Create(ctx, req)
		require.Error(t, err)
		assert.Equal(t, catalog.CodeProductNotFound, domainCode(t, err))
	})

	t.Run("non positive price", func(t *testing.T) {
		f := newFixture()
		bad := req
		bad.Items = []ReceivingSlipItemInput{{Quantity: 1, UnitPrice: decimal.Zero}}

		_, err := f.receiving.Create(ctx, bad)
		assert.Equal(t, shared.KindValidation, shared.KindOf(err))
	})
}

func TestUpdateReceivingItem_MatchesProduct(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	slip := draftReceivingSlip(11, receivingItem(7, nil, 3))

	f.slips.On("FindByIDForUpdate", ctx, int64(11)).Return(slip, nil)
	f.products.On("FindByIDs", ctx, []int64{5}).Return([]catalog.Product{{BaseAggregateRoot: productRoot(5)}}, nil)
	f.slips.On("Save", ctx, slip).Return(nil)

	resp, err := f.receiving.UpdateItem(ctx, 11, 7, ReceivingSlipItemInput{ProductID: ptr(5), Quantity: 3, UnitPrice: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(7), resp.Items[0].ID)
	assert.Equal(t, ptr(5), resp.Items[0].ProductID)
}

func TestRemoveReceivingItem_ConfirmedSlipRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	slip := draftReceivingSlip(11, receivingItem(7, ptr(3), 3))
	slip.Status = inventory.SlipStatusConfirmed

	f.slips.On("FindByIDForUpdate", ctx, int64(11)).Return(slip, nil)

	_, err := f.receiving.RemoveItem(ctx, 11, 7)
	assert.Equal(t, inventory.CodeSlipNotDraft, domainCode(t, err))
	assert.Equal(t, shared.KindConflict, shared.KindOf(err))
}

func TestDeleteReceivingSlip(t *testing.T) {
	ctx := context.Background()

	t.Run("draft", func(t *testing.T) {
		f := newFixture()
		f.slips.On("FindByIDForUpdate", ctx, int64(11)).Return(draftReceivingSlip(11), nil)
		f.slips.On("Delete", ctx, int64(11)).Return(nil)

		require.NoError(t, f.receiving.Delete(ctx, 11))
		f.slips.AssertExpectations(t)
	})

	t.Run("confirmed", func(t *testing.T) {
		f := newFixture()
		slip := draftReceivingSlip(11)
		slip.Status = inventory.SlipStatusConfirmed
		f.slips.On("FindByIDForUpdate", ctx, int64(11)).Return(slip, nil)

		err := f.receiving.Delete(ctx, 11)
		assert.Equal(t, inventory.CodeSlipNotDraft, domainCode(t, err))
		f.slips.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func productRoot(id int64) shared.BaseAggregateRoot {
	root := shared.NewBaseAggregateRoot()
	root.ID = id
	return root
}
