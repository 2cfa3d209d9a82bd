package repository

import (
	"context"
	"time"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/ticket"
)

// TicketRepository define el puerto de persistencia para KitchenTicket (DIP).
type TicketRepository interface {
	// CreateBatch inserta todos los tickets en una sola sentencia.
	CreateBatch(ctx context.Context, tickets []*entity.KitchenTicket) error
	// Transition aplica next solo si el estado actual está en from.
	// Devuelve domain.ErrNotFound si no existe el ticket y
	// domain.ErrInvalidTransition si el estado actual no lo permite.
	Transition(ctx context.Context, id string, next ticket.Status, from []ticket.Status, at time.Time) (*entity.KitchenTicketWithItem, error)
	// ListQueue todos los tickets con su plato, los más antiguos primero.
	ListQueue(ctx context.Context) ([]*entity.KitchenTicketWithItem, error)
	// ListByOrder tickets de un pedido, mismo orden que la cola.
	ListByOrder(ctx context.Context, orderID string) ([]*entity.KitchenTicketWithItem, error)
}
