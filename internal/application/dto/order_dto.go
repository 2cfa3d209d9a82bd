package dto

import "time"

// CartLine línea del carrito: plato y cantidad.
type CartLine struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// CreateOrderRequest entrada de POST /orders.
type CreateOrderRequest struct {
	Items []CartLine `json:"items"`
}

// TicketItemSummary datos mínimos del plato para mostrar el ticket recién creado.
type TicketItemSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlacedTicket ticket devuelto al crear el pedido.
type PlacedTicket struct {
	ID        string            `json:"id"`
	Status    string            `json:"status"`
	Quantity  int               `json:"quantity"`
	CreatedAt time.Time         `json:"createdAt"`
	Item      TicketItemSummary `json:"item"`
}

// OrderResponse salida del fan-out: un orderId y un ticket por línea.
type OrderResponse struct {
	OrderID string         `json:"orderId"`
	Tickets []PlacedTicket `json:"tickets"`
}
