package order

import "github.com/govalues/decimal"

// Totals is the aggregate of a set of line items: the monetary total and
// the total unit count. Both are computed once at creation time and stored
// with the order; they are never recomputed on read.
type Totals struct {
	Amount decimal.Decimal
	Items  int
}

// CalculateTotals derives Totals from line items:
//
//	Amount = Σ (unitPrice × quantity)
//	Items  = Σ quantity
//
// A pure computation with no I/O. An empty item slice yields zero totals;
// empty orders are accepted, which is the documented inherited behavior.
func CalculateTotals(items []Item) (Totals, error) {
	amount := decimal.Zero
	count := 0

	for _, item := range items {
		subtotal, err := item.Subtotal()
		if err != nil {
			return Totals{}, err
		}

		amount, err = amount.Add(subtotal)
		if err != nil {
			return Totals{}, err
		}

		count += item.Quantity()
	}

	return Totals{Amount: amount, Items: count}, nil
}
