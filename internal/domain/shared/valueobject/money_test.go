package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestVAT(t *testing.T) {
	tests := []struct {
		name    string
		taxable string
		want    string
	}{
		{"whole amount", "100000", "10000"},
		{"rounds half away from zero", "5", "1"},
		{"rounds down below half", "4", "0"},
		{"fractional taxable", "1234.5", "123"},
		{"negative is clamped", "-5000", "0"},
		{"zero", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VAT(decimal.RequireFromString(tt.taxable))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestLineTotal(t *testing.T) {
	got := LineTotal(decimal.NewFromInt(25000), 4)
	assert.True(t, decimal.NewFromInt(100000).Equal(got))
}
