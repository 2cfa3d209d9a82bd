package entity

import (
	"time"

	"github.com/jhoicas/restaurante-api/internal/domain/ticket"
)

// KitchenTicket una línea de un pedido seguida de forma independiente en cocina.
// Se crea solo durante el fan-out de un pedido y solo cambia por transiciones de estado.
type KitchenTicket struct {
	ID          string // código corto legible, p. ej. KT-3F9A12BC
	OrderID     string
	LineNo      int
	MenuItemID  string
	Status      ticket.Status
	Quantity    int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	CompletedAt *time.Time // no nulo si y solo si Status == completed
}

// KitchenTicketWithItem ticket junto con el plato al que hace referencia (vistas de cola y pedido).
type KitchenTicketWithItem struct {
	KitchenTicket
	Item MenuItem
}
