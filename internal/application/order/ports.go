package order

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con repositorios atados a ella.
// Si fn devuelve error no queda ningún ticket persistido.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		menuRepo repository.MenuItemRepository,
		ticketRepo repository.TicketRepository,
	) error) error
}
