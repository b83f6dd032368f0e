package order

import "github.com/novarajewels/jewellery-backend/internal/pricing"

// ComposeTotals derives the money fields of an order from its lines.
// Subtotal is the sum of snapshotted unit prices times quantities; the
// grand total additionally carries the discount, the delivery charge and
// any operator-added charges, floored at zero.
func ComposeTotals(items []Item, charges []Charge, deliveryCharge, discount float64) (subtotal, total float64) {
	for _, it := range items {
		subtotal += it.UnitPrice * float64(it.Quantity)
	}
	subtotal = pricing.Round2(subtotal)
	return subtotal, TotalFrom(subtotal, discount, deliveryCharge, charges)
}

// TotalFrom recomputes the grand total from already-stored components. The
// admin update path uses it so that edits to charges never re-derive the
// subtotal from live catalog prices.
func TotalFrom(subtotal, discount, deliveryCharge float64, charges []Charge) float64 {
	total := subtotal - discount + deliveryCharge
	for _, ch := range charges {
		total += ch.Amount
	}
	if total < 0 {
		total = 0
	}
	return pricing.Round2(total)
}
