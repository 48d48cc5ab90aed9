// Cliente HTTP de la API de Atlantis: tres endpoints GET fijos con
// validación de forma sobre el JSON decodificado.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/atlantisbooks/atlantis/internal/model"
)

const (
	pathClientDetails  = "/getClientDetails"
	pathBooks          = "/getBooks"
	pathOrdersByClient = "/getordersbyclient"
)

type Client struct {
	base string
	http *http.Client
}

func NewClient(base string, timeout time.Duration) *Client {
	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
	}
}

// CatalogPayload is the result of a catalog fetch. Total falls back to
// len(Books) when the endpoint omits it.
type CatalogPayload struct {
	Books []model.Book
	Total int
}

// GetCustomer fetches one customer record by id. The returned record
// still carries the plaintext password the endpoint embeds; stripping it
// is the caller's job.
func (c *Client) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	var payload struct {
		Customer *model.Customer `json:"customer"`
		Message  string          `json:"message"`
	}
	status, err := c.get(ctx, pathClientDetails, url.Values{"id": {id}}, &payload)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, newHTTPError(status, payload.Message)
	}
	if payload.Customer == nil {
		return nil, &ShapeError{Field: "customer"}
	}
	return payload.Customer, nil
}

func (c *Client) GetCatalog(ctx context.Context) (*CatalogPayload, error) {
	var payload struct {
		Books   *[]model.Book `json:"books"`
		Total   *int          `json:"total"`
		Message string        `json:"message"`
	}
	status, err := c.get(ctx, pathBooks, nil, &payload)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, newHTTPError(status, payload.Message)
	}
	if payload.Books == nil {
		return nil, &ShapeError{Field: "books[]"}
	}
	out := &CatalogPayload{Books: *payload.Books, Total: len(*payload.Books)}
	if payload.Total != nil {
		out.Total = *payload.Total
	}
	return out, nil
}

func (c *Client) GetOrdersByClient(ctx context.Context, clientID string) ([]model.Order, error) {
	var payload struct {
		Orders  *[]model.Order `json:"orders"`
		Message string         `json:"message"`
	}
	status, err := c.get(ctx, pathOrdersByClient, url.Values{"idcliente": {clientID}}, &payload)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, newHTTPError(status, payload.Message)
	}
	if payload.Orders == nil {
		return nil, &ShapeError{Field: "orders[]"}
	}
	return *payload.Orders, nil
}

// get issues the request and decodes the body leniently into v: an
// unparseable body leaves v at its zero value instead of failing, so
// status handling still runs with an empty payload.
func (c *Client) get(ctx context.Context, path string, q url.Values, v any) (int, error) {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	decodeLenient(resp.Body, v)
	return resp.StatusCode, nil
}

// decodeLenient is parse-or-default: an unreadable or non-JSON body
// leaves v at its zero value, it never produces an error.
func decodeLenient(r io.Reader, v any) {
	body, err := io.ReadAll(r)
	if err != nil {
		log.Debug().Err(err).Msg("response body unreadable, using empty payload")
		return
	}
	if !json.Valid(body) {
		log.Debug().Msg("response body not JSON, using empty payload")
		return
	}
	_ = json.Unmarshal(body, v)
}
