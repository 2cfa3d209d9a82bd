package dto

import "time"

// TicketResponse ticket de cocina con su plato.
type TicketResponse struct {
	ID          string           `json:"id"`
	OrderID     string           `json:"orderId"`
	Status      string           `json:"status"`
	Quantity    int              `json:"quantity"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   *time.Time       `json:"updatedAt"`
	CompletedAt *time.Time       `json:"completedAt"`
	Item        MenuItemResponse `json:"item"`
}

// OrderStatusResponse vista de un pedido para el seguimiento del cliente.
type OrderStatusResponse struct {
	OrderID string           `json:"orderId"`
	Tickets []TicketResponse `json:"tickets"`
}

// AllCompleted indica si el pedido tiene tickets y todos están completados.
func (r OrderStatusResponse) AllCompleted() bool {
	if len(r.Tickets) == 0 {
		return false
	}
	for _, t := range r.Tickets {
		if t.Status != "completed" {
			return false
		}
	}
	return true
}

// QueueResponse vista de cola de cocina (FIFO).
type QueueResponse struct {
	Tickets []TicketResponse `json:"tickets"`
}

// UpdateTicketStatusRequest entrada de la acción de cambio de estado.
type UpdateTicketStatusRequest struct {
	NextStatus string `json:"nextStatus" form:"nextStatus"`
}

// TicketActionResponse resultado del cambio de estado con la forma {error, success}.
type TicketActionResponse struct {
	ActionState
	Ticket *TicketResponse `json:"ticket,omitempty"`
}
