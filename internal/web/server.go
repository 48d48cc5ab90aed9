// Frontend HTTP del storefront: páginas renderizadas con html/template y
// una pequeña API JSON. Orquesta el cliente remoto, las tiendas locales y
// las funciones puras de catálogo/carrito; no contiene lógica propia de
// dominio.
package web

import (
	"embed"
	"html/template"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/atlantisbooks/atlantis/internal/api"
	"github.com/atlantisbooks/atlantis/internal/auth"
	"github.com/atlantisbooks/atlantis/internal/cart"
	"github.com/atlantisbooks/atlantis/internal/events"
	"github.com/atlantisbooks/atlantis/internal/model"
	"github.com/atlantisbooks/atlantis/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Server struct {
	tplLogin  *template.Template
	tplStore  *template.Template
	tplOrders *template.Template

	api      *api.Client
	authn    *auth.Authenticator
	sessions *session.Store
	carts    *cart.Store
	pub      *events.Publisher

	// Último catálogo obtenido; lo posee el controlador, no un global.
	mu       sync.Mutex
	snapshot []model.Book
}

func NewServer(apiClient *api.Client, authn *auth.Authenticator, sessions *session.Store, carts *cart.Store, pub *events.Publisher) *Server {
	funcs := template.FuncMap{
		"formatEUR": formatEUR,
		"comma":     func(n int) string { return humanize.Comma(int64(n)) },
		"year":      func() int { return time.Now().Year() },
	}

	layout := template.Must(template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html"))
	tplLogin := template.Must(template.Must(layout.Clone()).ParseFS(templatesFS, "templates/login.html"))
	tplStore := template.Must(template.Must(layout.Clone()).ParseFS(templatesFS, "templates/store.html"))
	tplOrders := template.Must(template.Must(layout.Clone()).ParseFS(templatesFS, "templates/orders.html"))

	return &Server{
		tplLogin:  tplLogin,
		tplStore:  tplStore,
		tplOrders: tplOrders,
		api:       apiClient,
		authn:     authn,
		sessions:  sessions,
		carts:     carts,
		pub:       pub,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHome)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/store", s.handleStore)
	mux.HandleFunc("/orders", s.handleOrders)
	mux.HandleFunc("/cart/add", s.handleCartAdd)
	mux.HandleFunc("/cart/remove", s.handleCartRemove)
	mux.HandleFunc("/cart/qty", s.handleCartQty)
	mux.HandleFunc("/cart/clear", s.handleCartClear)
	mux.HandleFunc("/cart/checkout", s.handleCheckout)

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/api/catalog", s.handleAPICatalog)
	apiMux.HandleFunc("/api/cart", s.handleAPICart)
	mux.Handle("/api/", cors.Default().Handler(apiMux))

	return withLog(mux)
}

func withLog(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h.ServeHTTP(w, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// setSnapshot replaces the catalog snapshot after a successful fetch.
// Last writer wins; a stale in-flight fetch can still overwrite a newer
// one, same as the storefront this replaces.
func (s *Server) setSnapshot(books []model.Book) {
	s.mu.Lock()
	s.snapshot = books
	s.mu.Unlock()
}

func (s *Server) snapshotBooks() []model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *Server) snapshotBook(id string) (model.Book, bool) {
	for _, b := range s.snapshotBooks() {
		if b.ID == id {
			return b, true
		}
	}
	return model.Book{}, false
}

// formatEUR floors to whole euros for display; the exact total stays in
// the cart calculator.
func formatEUR(v float64) string {
	return humanize.Comma(int64(math.Floor(v))) + " €"
}

func userLabel(c model.Customer) string {
	kind := "Cliente"
	if c.VIP {
		kind = "VIP"
	}
	return strings.TrimSpace(c.Nombre+" "+c.Apellido) + " • " + kind
}
