package valueobject

import (
	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

// VND is the only settlement currency of the shop. Amounts carry no minor unit.
const VND Currency = "VND"

// MoneyScale is the number of decimal places amounts are rounded to
const MoneyScale int32 = 0

// VATRate is the flat value added tax rate applied to taxable amounts
var VATRate = decimal.NewFromFloat(0.10)

// VAT returns the tax due on a taxable amount: max(amount, 0) × VATRate,
// rounded half away from zero to MoneyScale.
func VAT(taxable decimal.Decimal) decimal.Decimal {
	return ClampZero(taxable).Mul(VATRate).Round(MoneyScale)
}

// ClampZero returns d, or zero when d is negative
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// LineTotal returns unitPrice × quantity
func LineTotal(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}
