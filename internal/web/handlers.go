package web

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/atlantisbooks/atlantis/internal/cart"
	"github.com/atlantisbooks/atlantis/internal/catalog"
	"github.com/atlantisbooks/atlantis/internal/events"
	"github.com/atlantisbooks/atlantis/internal/model"
)

type loginData struct {
	Error string
}

type storeData struct {
	User     string
	Query    catalog.Query
	Genres   []string
	Stats    catalog.Stats
	Books    []model.Book
	Total    int
	Cart     []model.CartItem
	Totals   cart.Totals
	Error    string
	Comprado bool
}

type orderRow struct {
	model.Order
	Titulo string
}

type ordersData struct {
	User   string
	Orders []orderRow
	Error  string
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.sessions.Load(r.Context()) != nil {
		http.Redirect(w, r, "/store", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, s.tplLogin, loginData{})
	case http.MethodPost:
		customerID := r.FormValue("customerId")
		password := r.FormValue("password")

		cust, err := s.authn.Login(r.Context(), customerID, password)
		if err != nil {
			s.render(w, s.tplLogin, loginData{Error: err.Error()})
			return
		}
		if sess := s.sessions.Load(r.Context()); sess != nil {
			_ = s.pub.Publish(r.Context(), "storefront.login", events.LoginEvent{
				CustomerID: cust.ID,
				LoginID:    sess.LoginID,
				VIP:        cust.VIP,
			})
		}
		http.Redirect(w, r, "/store", http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.authn.Logout(r.Context()); err != nil {
		log.Warn().Err(err).Msg("session clear failed")
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleStore(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	q := catalog.Query{
		Text:        r.URL.Query().Get("q"),
		Genre:       r.URL.Query().Get("genre"),
		InStockOnly: r.URL.Query().Get("stock") != "",
	}

	items := s.carts.Load(r.Context())
	data := storeData{
		User:     userLabel(sess.Customer),
		Query:    q,
		Cart:     items,
		Totals:   cart.Calculate(items),
		Comprado: r.URL.Query().Get("comprado") != "",
	}

	payload, err := s.api.GetCatalog(r.Context())
	if err != nil {
		// El error se muestra en el panel; el resto del estado queda intacto
		data.Error = err.Error()
		s.render(w, s.tplStore, data)
		return
	}
	s.setSnapshot(payload.Books)

	data.Genres = catalog.Genres(payload.Books)
	data.Stats = catalog.ComputeStats(payload.Books)
	data.Books = catalog.Filter(payload.Books, q)
	data.Total = payload.Total
	s.render(w, s.tplStore, data)
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := ordersData{User: userLabel(sess.Customer)}

	orders, err := s.api.GetOrdersByClient(r.Context(), sess.Customer.ID)
	if err != nil {
		data.Error = err.Error()
		s.render(w, s.tplOrders, data)
		return
	}

	// Título por id de artículo, resuelto contra el catálogo
	titles := map[string]string{}
	if payload, err := s.api.GetCatalog(r.Context()); err == nil {
		s.setSnapshot(payload.Books)
		for _, b := range payload.Books {
			titles[b.ID] = b.Titulo
		}
	}
	for _, o := range orders {
		data.Orders = append(data.Orders, orderRow{Order: o, Titulo: titles[o.IDArticulo]})
	}
	s.render(w, s.tplOrders, data)
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.FormValue("id")
	b, ok := s.snapshotBook(id)
	if !ok {
		// Snapshot frío (p. ej. tras reiniciar): un intento de refresco
		if payload, err := s.api.GetCatalog(r.Context()); err == nil {
			s.setSnapshot(payload.Books)
			b, ok = s.snapshotBook(id)
		}
	}
	if ok {
		items := cart.Add(s.carts.Load(r.Context()), b, 1)
		if err := s.carts.Save(r.Context(), items); err != nil {
			log.Warn().Err(err).Msg("cart save failed")
		}
	}
	s.redirectBack(w, r)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	items := cart.Remove(s.carts.Load(r.Context()), r.FormValue("key"))
	if err := s.carts.Save(r.Context(), items); err != nil {
		log.Warn().Err(err).Msg("cart save failed")
	}
	s.redirectBack(w, r)
}

func (s *Server) handleCartQty(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	delta, err := strconv.Atoi(r.FormValue("delta"))
	if err != nil {
		http.Error(w, "delta inválido", http.StatusBadRequest)
		return
	}
	items := cart.ChangeQty(s.carts.Load(r.Context()), r.FormValue("key"), delta, s.snapshotBooks())
	if err := s.carts.Save(r.Context(), items); err != nil {
		log.Warn().Err(err).Msg("cart save failed")
	}
	s.redirectBack(w, r)
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := s.carts.Clear(r.Context()); err != nil {
		log.Warn().Err(err).Msg("cart clear failed")
	}
	s.redirectBack(w, r)
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	items := s.carts.Load(r.Context())
	totals := cart.Calculate(items)
	if totals.Count == 0 {
		s.redirectBack(w, r)
		return
	}
	customerID := ""
	if sess := s.sessions.Load(r.Context()); sess != nil {
		customerID = sess.Customer.ID
	}
	_ = s.pub.Publish(r.Context(), "storefront.checkout", events.CheckoutEvent{
		CustomerID: customerID,
		Count:      totals.Count,
		Total:      totals.Total,
	})
	if err := s.carts.Clear(r.Context()); err != nil {
		log.Warn().Err(err).Msg("cart clear failed")
	}
	http.Redirect(w, r, "/store?comprado=1", http.StatusSeeOther)
}

func (s *Server) handleAPICatalog(w http.ResponseWriter, r *http.Request) {
	payload, err := s.api.GetCatalog(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"message": err.Error()})
		return
	}
	s.setSnapshot(payload.Books)
	writeJSON(w, http.StatusOK, map[string]any{
		"books": payload.Books,
		"total": payload.Total,
	})
}

func (s *Server) handleAPICart(w http.ResponseWriter, r *http.Request) {
	items := s.carts.Load(r.Context())
	totals := cart.Calculate(items)
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": totals.Count,
		"total": totals.Total,
	})
}

func (s *Server) render(w http.ResponseWriter, tpl *template.Template, data any) {
	if err := tpl.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("template execute failed")
		http.Error(w, "Error renderizando página", http.StatusInternalServerError)
	}
}

func (s *Server) redirectBack(w http.ResponseWriter, r *http.Request) {
	target := r.Referer()
	if target == "" {
		target = "/store"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("json encode failed")
	}
}
