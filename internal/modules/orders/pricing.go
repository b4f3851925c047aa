package orders

import "github.com/shopspring/decimal"

// Totals is the pricing breakdown for an order. Amounts are exact decimals;
// rounding to two places happens only at display time.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// PricedLine pairs a unit price with a quantity.
type PricedLine struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Price computes subtotal, tax and total for the given lines. Lines without
// a positive quantity contribute nothing; the tax is subtotal times rate,
// not independently rounded; an empty line list yields zeros throughout.
func Price(lines []PricedLine, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	tax := subtotal.Mul(taxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
