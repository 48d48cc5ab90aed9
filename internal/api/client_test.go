package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server
}

func TestGetCustomer_Success(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/getClientDetails", r.URL.Path)
		assert.Equal(t, "1111", r.URL.Query().Get("id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"customer":{"id":"1111","Nombre":"Ana","Apellido":"Ruiz","VIP":true,"password":"abc"}}`))
	})
	defer server.Close()

	cust, err := c.GetCustomer(context.Background(), "1111")
	require.NoError(t, err)
	assert.Equal(t, "1111", cust.ID)
	assert.Equal(t, "Ana", cust.Nombre)
	assert.True(t, cust.VIP)
	assert.Equal(t, "abc", cust.Password)
}

func TestGetCustomer_HTTPErrorUsesBodyMessage(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"cliente no encontrado"}`))
	})
	defer server.Close()

	_, err := c.GetCustomer(context.Background(), "9999")
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "cliente no encontrado", httpErr.Message)
	assert.Equal(t, "cliente no encontrado", err.Error())
}

func TestGetCustomer_HTTPErrorFallbackMessage(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`not json at all`))
	})
	defer server.Close()

	_, err := c.GetCustomer(context.Background(), "1111")
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Error HTTP 500", httpErr.Message)
}

func TestGetCustomer_MissingCustomerIsShapeError(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"ok pero vacío"}`))
	})
	defer server.Close()

	_, err := c.GetCustomer(context.Background(), "1111")
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "Respuesta inválida: falta customer", err.Error())
}

func TestGetCustomer_GarbageBodyWith200IsShapeError(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>definitely not json</html>`))
	})
	defer server.Close()

	_, err := c.GetCustomer(context.Background(), "1111")
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
}

func TestGetCatalog_Success(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/getBooks", r.URL.Path)
		w.Write([]byte(`{"books":[{"id":"b1","titulo":"X","autor":"A","genero":"Suspense","año":2001,"precio":18.5,"stock":4}],"total":20}`))
	})
	defer server.Close()

	payload, err := c.GetCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, payload.Books, 1)
	assert.Equal(t, "b1", payload.Books[0].ID)
	assert.Equal(t, 2001, payload.Books[0].Año)
	assert.Equal(t, 18.5, payload.Books[0].Precio)
	assert.Equal(t, 20, payload.Total)
}

func TestGetCatalog_TotalFallsBackToLength(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"books":[{"id":"b1"},{"id":"b2"}]}`))
	})
	defer server.Close()

	payload, err := c.GetCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, payload.Total)
}

func TestGetCatalog_EmptyListIsValid(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"books":[]}`))
	})
	defer server.Close()

	payload, err := c.GetCatalog(context.Background())
	require.NoError(t, err)
	assert.Empty(t, payload.Books)
	assert.Equal(t, 0, payload.Total)
}

func TestGetCatalog_MissingBooksIsShapeError(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total":10}`))
	})
	defer server.Close()

	_, err := c.GetCatalog(context.Background())
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "Respuesta inválida: falta books[]", err.Error())
}

func TestGetOrdersByClient_Success(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/getordersbyclient", r.URL.Path)
		assert.Equal(t, "1111", r.URL.Query().Get("idcliente"))
		w.Write([]byte(`{"orders":[{"ordernumber":"O-1","fechadecompra":"2026-01-02","estado":"enviado","idarticulo":"b1"}]}`))
	})
	defer server.Close()

	orders, err := c.GetOrdersByClient(context.Background(), "1111")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "O-1", orders[0].OrderNumber)
	assert.Equal(t, "enviado", orders[0].Estado)
	assert.Equal(t, "b1", orders[0].IDArticulo)
}

func TestGetOrdersByClient_MissingOrdersIsShapeError(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	_, err := c.GetOrdersByClient(context.Background(), "1111")
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "Respuesta inválida: falta orders[]", err.Error())
}

func TestGet_QueryValuesAreEncoded(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "a b&c", r.URL.Query().Get("id"))
		w.Write([]byte(`{"customer":{"id":"a b&c"}}`))
	})
	defer server.Close()

	cust, err := c.GetCustomer(context.Background(), "a b&c")
	require.NoError(t, err)
	assert.Equal(t, "a b&c", cust.ID)
}
