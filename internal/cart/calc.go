package cart

import "github.com/atlantisbooks/atlantis/internal/model"

// Totals carries the exact sums over the cart. Total is unrounded; any
// flooring to whole euros happens at display time.
type Totals struct {
	Count int
	Total float64
}

func Calculate(items []model.CartItem) Totals {
	var t Totals
	for _, it := range items {
		t.Count += it.Qty
		t.Total += float64(it.Qty) * it.Precio
	}
	return t
}
