package ticket

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/menu"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/internal/domain/ticket"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// UseCase avance de tickets en cocina y vistas de cola y pedido.
type UseCase struct {
	repo      repository.TicketRepository
	publisher ports.EventPublisher
	slips     ports.TicketSlipRenderer
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. publisher, slips y log pueden ser nil.
func NewUseCase(repo repository.TicketRepository, publisher ports.EventPublisher, slips ports.TicketSlipRenderer, log *logger.Logger) *UseCase {
	if publisher == nil {
		publisher = ports.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{repo: repo, publisher: publisher, slips: slips, log: log.Component("ticket"), now: time.Now}
}

// UpdateStatus mueve el ticket a next si la tabla de transiciones lo permite.
// Repetir el estado actual es idempotente. Estado desconocido → ErrInvalidInput;
// ticket inexistente → ErrNotFound; salto o retroceso → ErrInvalidTransition.
func (uc *UseCase) UpdateStatus(ctx context.Context, ticketID, rawNext string) (*dto.TicketResponse, error) {
	ticketID = strings.TrimSpace(ticketID)
	if ticketID == "" {
		return nil, domain.ErrInvalidInput
	}
	next, err := ticket.ParseStatus(strings.TrimSpace(rawNext))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	at := uc.now().UTC()
	t, err := uc.repo.Transition(ctx, ticketID, next, ticket.Sources(next), at)
	if err != nil {
		return nil, err
	}

	evt := dto.TicketStatusEvent{TicketID: t.ID, OrderID: t.OrderID, Status: string(t.Status), ChangedAt: at}
	if err := uc.publisher.PublishTicketStatus(ctx, evt); err != nil {
		uc.log.Warn().Err(err).Str("ticket_id", t.ID).Msg("no se pudo publicar ticket.status_changed")
	}
	return ToResponse(t), nil
}

// Queue todos los tickets, los más antiguos primero.
func (uc *UseCase) Queue(ctx context.Context) (*dto.QueueResponse, error) {
	rows, err := uc.repo.ListQueue(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.QueueResponse{Tickets: toResponses(rows)}, nil
}

// ByOrder tickets de un pedido. Un pedido desconocido devuelve lista vacía.
func (uc *UseCase) ByOrder(ctx context.Context, orderID string) (*dto.OrderStatusResponse, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &dto.OrderStatusResponse{OrderID: orderID, Tickets: toResponses(rows)}, nil
}

// OrderSlips PDF con una comanda por ticket del pedido.
func (uc *UseCase) OrderSlips(ctx context.Context, orderID string) ([]byte, error) {
	if uc.slips == nil {
		return nil, domain.ErrMisconfigured
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return uc.slips.RenderOrderSlips(ctx, orderID, rows)
}

func toResponses(rows []*entity.KitchenTicketWithItem) []dto.TicketResponse {
	out := make([]dto.TicketResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, *ToResponse(r))
	}
	return out
}

// ToResponse convierte un ticket con su plato en la vista pública.
func ToResponse(t *entity.KitchenTicketWithItem) *dto.TicketResponse {
	return &dto.TicketResponse{
		ID:          t.ID,
		OrderID:     t.OrderID,
		Status:      string(t.Status),
		Quantity:    t.Quantity,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		CompletedAt: t.CompletedAt,
		Item:        *menu.ToResponse(&t.Item),
	}
}
