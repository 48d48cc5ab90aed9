// Operaciones de carrito
package cart

import (
	"slices"

	"github.com/atlantisbooks/atlantis/internal/model"
)

// Add merges qty units of b into items, keyed by book id. The resulting
// quantity is clamped to the book's stock when the stock is positive; a
// zero stock leaves the arithmetic result untouched, matching the
// permissive behavior of the storefront this client talks to.
func Add(items []model.CartItem, b model.Book, qty int) []model.CartItem {
	out := slices.Clone(items)
	key := b.ID
	for i := range out {
		if out[i].Key == key {
			out[i].Qty = clampQty(out[i].Qty+qty, b.Stock)
			return out
		}
	}
	return append(out, model.CartItem{
		Key:    key,
		ID:     b.ID,
		Titulo: b.Titulo,
		Autor:  b.Autor,
		Precio: b.Precio,
		Genero: b.Genero,
		Qty:    clampQty(qty, b.Stock),
	})
}

// Remove deletes the line item with the given key, if present.
func Remove(items []model.CartItem, key string) []model.CartItem {
	out := make([]model.CartItem, 0, len(items))
	for _, it := range items {
		if it.Key != key {
			out = append(out, it)
		}
	}
	return out
}

// ChangeQty adjusts a line item's quantity by delta. The owning book is
// looked up in books (the caller's current catalog snapshot) to clamp the
// result to stock; when the book is not discoverable the result stays
// unclamped. A quantity that drops to zero or below removes the line
// entirely.
func ChangeQty(items []model.CartItem, key string, delta int, books []model.Book) []model.CartItem {
	idx := slices.IndexFunc(items, func(it model.CartItem) bool { return it.Key == key })
	if idx < 0 {
		return items
	}
	q := items[idx].Qty + delta
	if q <= 0 {
		return Remove(items, key)
	}
	if b, ok := findBook(books, items[idx].ID); ok {
		q = clampQty(q, b.Stock)
	}
	out := slices.Clone(items)
	out[idx].Qty = q
	return out
}

func findBook(books []model.Book, id string) (model.Book, bool) {
	for _, b := range books {
		if b.ID == id {
			return b, true
		}
	}
	return model.Book{}, false
}

func clampQty(q, stock int) int {
	if stock > 0 && q > stock {
		return stock
	}
	return q
}
