package invoices

import "math"

// Totals are the server-computed amounts of an invoice.
type Totals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// ComputeTotals fills each item's amount and returns the invoice totals,
// every figure rounded to cents.
func ComputeTotals(items []Item, taxPercentage float64) ([]Item, Totals) {
	out := make([]Item, len(items))
	subtotal := 0.0
	for i, it := range items {
		it.Amount = roundCents(it.Quantity * it.Price)
		subtotal += it.Amount
		out[i] = it
	}
	subtotal = roundCents(subtotal)
	tax := roundCents(subtotal * taxPercentage / 100)
	return out, Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    roundCents(subtotal + tax),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
