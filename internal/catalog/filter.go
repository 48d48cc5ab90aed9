// Filtrado y estadísticas del catálogo: funciones puras sobre el snapshot
// de libros que posee el llamador.
package catalog

import (
	"sort"
	"strings"

	"github.com/atlantisbooks/atlantis/internal/model"
)

type Query struct {
	Text        string
	Genre       string
	InStockOnly bool
}

// Filter returns the books matching q, preserving their original order.
// The text match is a case-insensitive substring over title and author;
// the genre match is string-exact; the stock flag keeps stock > 0 only.
func Filter(books []model.Book, q Query) []model.Book {
	text := strings.ToLower(strings.TrimSpace(q.Text))

	out := make([]model.Book, 0, len(books))
	for _, b := range books {
		matchesText := text == "" ||
			strings.Contains(strings.ToLower(b.Titulo), text) ||
			strings.Contains(strings.ToLower(b.Autor), text)
		matchesGenre := q.Genre == "" || b.Genero == q.Genre
		matchesStock := !q.InStockOnly || b.Stock > 0

		if matchesText && matchesGenre && matchesStock {
			out = append(out, b)
		}
	}
	return out
}

// Genres returns the distinct non-empty genres present, sorted.
func Genres(books []model.Book) []string {
	seen := map[string]bool{}
	var out []string
	for _, b := range books {
		if b.Genero == "" || seen[b.Genero] {
			continue
		}
		seen[b.Genero] = true
		out = append(out, b.Genero)
	}
	sort.Strings(out)
	return out
}

type Stats struct {
	Total   int
	InStock int
	Genres  int
}

func ComputeStats(books []model.Book) Stats {
	st := Stats{Total: len(books)}
	seen := map[string]bool{}
	for _, b := range books {
		if b.Stock > 0 {
			st.InStock++
		}
		if b.Genero != "" && !seen[b.Genero] {
			seen[b.Genero] = true
			st.Genres++
		}
	}
	return st
}
