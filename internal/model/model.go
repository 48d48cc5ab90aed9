// Tipos compartidos del storefront. Los nombres de campo JSON siguen el
// formato de la API de Atlantis tal cual llega por el cable.
package model

import "time"

type Customer struct {
	ID       string `json:"id"`
	Nombre   string `json:"Nombre"`
	Apellido string `json:"Apellido"`
	VIP      bool   `json:"VIP"`
	// Plaintext en la respuesta del endpoint (diseño demo); se elimina
	// antes de persistir la sesión.
	Password string `json:"password,omitempty"`
}

// Safe returns a copy with the password removed. Sessions only ever
// persist the safe form.
func (c Customer) Safe() Customer {
	c.Password = ""
	return c
}

type Book struct {
	ID     string  `json:"id"`
	Titulo string  `json:"titulo"`
	Autor  string  `json:"autor"`
	Genero string  `json:"genero"`
	Año    int     `json:"año"`
	Precio float64 `json:"precio"`
	Stock  int     `json:"stock"`
}

type Order struct {
	OrderNumber   string `json:"ordernumber"`
	FechaDeCompra string `json:"fechadecompra"`
	Estado        string `json:"estado"`
	IDArticulo    string `json:"idarticulo"`
}

// CartItem is one catalog entry in the cart. Key equals the book id.
type CartItem struct {
	Key    string  `json:"key"`
	ID     string  `json:"id"`
	Titulo string  `json:"titulo"`
	Autor  string  `json:"autor"`
	Precio float64 `json:"precio"`
	Genero string  `json:"genero"`
	Qty    int     `json:"qty"`
}

// Session is the locally persisted record of the authenticated customer.
// One active session per client; each login overwrites the previous one.
type Session struct {
	Customer   Customer  `json:"customer"`
	LoginID    string    `json:"loginId"`
	LoggedInAt time.Time `json:"loggedInAt"`
}
