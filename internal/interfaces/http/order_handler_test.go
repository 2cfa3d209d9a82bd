package http_test

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
)

func TestOrderFlow_DelCarritoALaCocina(t *testing.T) {
	env := newTestEnv(t)
	env.seedItem(t, "burger", "Hamburguesa", price("9.99"))
	env.seedItem(t, "fries", "Papas", price("3.50"))
	env.seedItem(t, "soon", "Próximamente", nil)

	resp := env.do(t, http.MethodPost, "/api/orders", dto.CreateOrderRequest{Items: []dto.CartLine{
		{ID: "burger", Quantity: 2},
		{ID: "fries", Quantity: 1},
		{ID: "no-existe", Quantity: 1},
		{ID: "soon", Quantity: 1},
	}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	placed := decode[dto.OrderResponse](t, resp)
	require.NotEmpty(t, placed.OrderID)
	require.Len(t, placed.Tickets, 2)
	assert.Equal(t, "Hamburguesa", placed.Tickets[0].Item.Name)
	assert.Equal(t, 2, placed.Tickets[0].Quantity)
	for _, tk := range placed.Tickets {
		assert.Equal(t, "queued", tk.Status)
	}

	resp = env.do(t, http.MethodGet, "/api/orders/"+placed.OrderID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	status := decode[dto.OrderStatusResponse](t, resp)
	assert.Len(t, status.Tickets, 2)
	assert.False(t, status.AllCompleted())

	kitchen := env.loginStaff(t, "kitchen", testKitchenPasscode)
	resp = env.do(t, http.MethodGet, "/api/tickets", nil, withCookies(kitchen))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	queue := decode[dto.QueueResponse](t, resp)
	require.Len(t, queue.Tickets, 2)
	assert.Equal(t, placed.Tickets[0].ID, queue.Tickets[0].ID)

	ticketID := placed.Tickets[0].ID
	path := "/api/tickets/" + ticketID + "/status"

	resp = env.do(t, http.MethodPost, path, map[string]string{"nextStatus": "prepping"}, withCookies(kitchen))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	action := decode[dto.TicketActionResponse](t, resp)
	assert.True(t, action.Success)
	assert.Nil(t, action.Error)
	assert.Equal(t, "prepping", action.Ticket.Status)

	resp = env.do(t, http.MethodPost, path, map[string]string{"nextStatus": "completed"}, withCookies(kitchen))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	action = decode[dto.TicketActionResponse](t, resp)
	require.NotNil(t, action.Ticket.CompletedAt)

	// Completado es terminal.
	resp = env.do(t, http.MethodPost, path, map[string]string{"nextStatus": "queued"}, withCookies(kitchen))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	failed := decode[dto.ActionState](t, resp)
	assert.False(t, failed.Success)
	require.NotNil(t, failed.Error)

	resp = env.do(t, http.MethodGet, "/api/orders/"+placed.OrderID, nil)
	status = decode[dto.OrderStatusResponse](t, resp)
	assert.Equal(t, "completed", status.Tickets[0].Status)
	assert.Equal(t, "queued", status.Tickets[1].Status)
}

func TestOrder_CarritoInvalido(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/orders", dto.CreateOrderRequest{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EMPTY_CART", decode[dto.ErrorResponse](t, resp).Code)

	resp = env.do(t, http.MethodPost, "/api/orders", dto.CreateOrderRequest{Items: []dto.CartLine{{ID: " ", Quantity: 1}, {ID: "x", Quantity: 0}}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_CART", decode[dto.ErrorResponse](t, resp).Code)
	assert.Equal(t, 0, env.store.TicketCount())
}

func TestOrder_PedidoDesconocidoDevuelveListaVacia(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/orders/no-existe", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.OrderStatusResponse](t, resp).Tickets)
}

func TestTicketStatus_Errores(t *testing.T) {
	env := newTestEnv(t)
	env.seedItem(t, "burger", "Hamburguesa", price("9.99"))
	placed := decode[dto.OrderResponse](t, env.do(t, http.MethodPost, "/api/orders",
		dto.CreateOrderRequest{Items: []dto.CartLine{{ID: "burger", Quantity: 1}}}))
	kitchen := env.loginStaff(t, "kitchen", testKitchenPasscode)

	resp := env.do(t, http.MethodPost, "/api/tickets/KT-NOEXISTE/status", map[string]string{"nextStatus": "prepping"}, withCookies(kitchen))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/tickets/"+placed.Tickets[0].ID+"/status", map[string]string{"nextStatus": "ready"}, withCookies(kitchen))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/tickets/"+placed.Tickets[0].ID+"/status", map[string]string{"nextStatus": "completed"}, withCookies(kitchen))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/tickets/"+placed.Tickets[0].ID+"/status", map[string]string{"nextStatus": "prepping"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestOrderSlips_PDFParaCocina(t *testing.T) {
	env := newTestEnv(t)
	env.seedItem(t, "burger", "Hamburguesa", price("9.99"))
	placed := decode[dto.OrderResponse](t, env.do(t, http.MethodPost, "/api/orders",
		dto.CreateOrderRequest{Items: []dto.CartLine{{ID: "burger", Quantity: 3}}}))

	resp := env.do(t, http.MethodGet, "/api/orders/"+placed.OrderID+"/slips.pdf", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	kitchen := env.loginStaff(t, "kitchen", testKitchenPasscode)
	resp = env.do(t, http.MethodGet, "/api/orders/"+placed.OrderID+"/slips.pdf", nil, withCookies(kitchen))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = env.do(t, http.MethodGet, "/api/orders/no-existe/slips.pdf", nil, withCookies(kitchen))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
