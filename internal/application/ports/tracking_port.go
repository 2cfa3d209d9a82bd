package ports

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
)

// OrderStatusFetcher consulta el estado de un pedido (GET /orders/{orderId}).
type OrderStatusFetcher interface {
	FetchOrderStatus(ctx context.Context, orderID string) (*dto.OrderStatusResponse, error)
}
