package inventory

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSalesDispatchSlip(t *testing.T) {
	slip, err := NewSalesDispatchSlip(42, "")
	require.NoError(t, err)
	assert.Equal(t, "ORD-42", slip.ReferenceNo)
	assert.Equal(t, DispatchKindSales, slip.Kind)
	require.NotNil(t, slip.OrderID)
	assert.Equal(t, int64(42), *slip.OrderID)

	_, err = NewSalesDispatchSlip(0, "")
	assert.Error(t, err)
}

func TestNewProjectDispatchSlip(t *testing.T) {
	slip, err := NewProjectDispatchSlip("PRJ-2026-01", "site A")
	require.NoError(t, err)
	assert.Equal(t, DispatchKindProject, slip.Kind)
	assert.Nil(t, slip.OrderID)

	_, err = NewProjectDispatchSlip("ORD-42", "")
	assert.Error(t, err, "sales references are reserved")
	_, err = NewProjectDispatchSlip(" ", "")
	assert.Error(t, err)
}

func TestDispatchSlip_Confirm(t *testing.T) {
	slip, err := NewSalesDispatchSlip(42, "")
	require.NoError(t, err)
	slip.ID = 3

	assert.Equal(t, CodeSlipEmpty, domainCode(t, slip.Confirm(time.Now())))

	item, err := NewDispatchSlipItem(7, 2, decimal.NewFromInt(25000))
	require.NoError(t, err)
	require.NoError(t, slip.AddItem(item))

	require.NoError(t, slip.Confirm(time.Now()))
	assert.True(t, slip.IsConfirmed())
	assert.NotNil(t, slip.ConfirmedAt)
	require.Len(t, slip.GetDomainEvents(), 1)

	assert.Equal(t, CodeSlipNotDraft, domainCode(t, slip.Confirm(time.Now())))
	assert.Equal(t, CodeSlipNotDraft, domainCode(t, slip.AddItem(item)))
}

func TestDispatchSlip_CheckDirectDelete(t *testing.T) {
	sales, err := NewSalesDispatchSlip(42, "")
	require.NoError(t, err)
	assert.Equal(t, CodeDispatchLinked, domainCode(t, sales.CheckDirectDelete()))

	project, err := NewProjectDispatchSlip("PRJ-1", "")
	require.NoError(t, err)
	assert.NoError(t, project.CheckDirectDelete())

	project.Status = SlipStatusConfirmed
	assert.Equal(t, CodeSlipNotDraft, domainCode(t, project.CheckDirectDelete()))
}

func TestNewDispatchSlipItem_Validation(t *testing.T) {
	_, err := NewDispatchSlipItem(0, 1, decimal.Zero)
	assert.Error(t, err)
	_, err = NewDispatchSlipItem(1, 0, decimal.Zero)
	assert.Error(t, err)
	_, err = NewDispatchSlipItem(1, 1, decimal.NewFromInt(-1))
	assert.Error(t, err)
	_, err = NewDispatchSlipItem(1, MaxLineQuantity+1, decimal.NewFromInt(1))
	assert.Equal(t, CodeInvalidQuantity, domainCode(t, err))
}

func TestAggregateReceipts(t *testing.T) {
	got, err := AggregateReceipts([]StockReceipt{
		{ProductID: 9, Quantity: 1},
		{ProductID: 2, Quantity: 4},
		{ProductID: 9, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []StockReceipt{{ProductID: 2, Quantity: 4}, {ProductID: 9, Quantity: 3}}, got)
	assert.Equal(t, []int64{2, 9}, ProductIDs(got))

	empty, err := AggregateReceipts(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAggregateReceipts_RejectsInvalidTotals(t *testing.T) {
	tests := []struct {
		name     string
		receipts []StockReceipt
	}{
		{"zero quantity", []StockReceipt{{ProductID: 1, Quantity: 0}}},
		{"negative quantity", []StockReceipt{{ProductID: 1, Quantity: 5}, {ProductID: 1, Quantity: -2}}},
		{"sum overflows", []StockReceipt{
			{ProductID: 1, Quantity: math.MaxInt64/2 + 1},
			{ProductID: 1, Quantity: math.MaxInt64/2 + 1},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AggregateReceipts(tt.receipts)
			assert.Nil(t, got)
			assert.Equal(t, CodeInvalidQuantity, domainCode(t, err))
		})
	}
}

func TestAddQuantity(t *testing.T) {
	tests := []struct {
		a, b   int64
		want   int64
		wantOK bool
	}{
		{50, 7, 57, true},
		{math.MaxInt64 - 1, 1, math.MaxInt64, true},
		{math.MaxInt64 - 1, 2, 0, false},
		{math.MaxInt64/2 + 1, math.MaxInt64/2 + 1, 0, false},
		{math.MinInt64, -1, 0, false},
	}
	for _, tt := range tests {
		got, ok := AddQuantity(tt.a, tt.b)
		assert.Equal(t, tt.wantOK, ok, "%d + %d", tt.a, tt.b)
		assert.Equal(t, tt.want, got, "%d + %d", tt.a, tt.b)
	}
}
