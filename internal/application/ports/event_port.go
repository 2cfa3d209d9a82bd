package ports

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
)

// EventPublisher publica eventos del flujo de pedidos para consumidores externos.
// Es best-effort: un fallo se registra pero nunca revierte la operación.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, evt dto.OrderPlacedEvent) error
	PublishTicketStatus(ctx context.Context, evt dto.TicketStatusEvent) error
}

// NopPublisher descarta los eventos (AMQP deshabilitado).
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, dto.OrderPlacedEvent) error   { return nil }
func (NopPublisher) PublishTicketStatus(context.Context, dto.TicketStatusEvent) error { return nil }
