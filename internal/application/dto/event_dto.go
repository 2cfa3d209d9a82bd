package dto

import "time"

// OrderPlacedEvent se publica tras crear los tickets de un pedido.
type OrderPlacedEvent struct {
	OrderID   string    `json:"orderId"`
	TicketIDs []string  `json:"ticketIds"`
	PlacedAt  time.Time `json:"placedAt"`
}

// TicketStatusEvent se publica tras cada cambio de estado aceptado.
type TicketStatusEvent struct {
	TicketID  string    `json:"ticketId"`
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changedAt"`
}
