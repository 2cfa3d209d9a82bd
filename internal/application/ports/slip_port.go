package ports

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// TicketSlipRenderer genera las comandas imprimibles de un pedido.
type TicketSlipRenderer interface {
	RenderOrderSlips(ctx context.Context, orderID string, tickets []*entity.KitchenTicketWithItem) ([]byte, error)
}
