// Package pricing holds the monetary arithmetic for sales. All values are
// shopspring decimals; binary floats never touch a price. Results are rounded
// half-up to two decimal places, matching the decimal(10,2) columns.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// LineSubtotal computes unitPrice × quantity × (1 − discountPct/100), rounded
// to 2dp. discountPct is a percentage in [0,100]; quantity must be positive.
// Validation of those ranges happens at the request boundary, not here.
func LineSubtotal(unitPrice decimal.Decimal, quantity int, discountPct decimal.Decimal) decimal.Decimal {
	qty := decimal.NewFromInt(int64(quantity))
	factor := decimal.NewFromInt(1).Sub(discountPct.Div(hundred))
	return unitPrice.Mul(qty).Mul(factor).Round(2)
}

// Total sums already-rounded line subtotals and rounds the result to 2dp.
func Total(subtotals []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, s := range subtotals {
		total = total.Add(s)
	}
	return total.Round(2)
}
