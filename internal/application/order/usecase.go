package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/internal/domain/ticket"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// TicketIDPrefix prefijo de los códigos de ticket de cocina.
const TicketIDPrefix = "KT-"

// MaxLineQuantity cantidad máxima por línea; las líneas por encima se descartan.
const MaxLineQuantity = 999

// maxPlaceAttempts intentos de la transacción cuando un código KT- ya existe.
const maxPlaceAttempts = 3

// UseCase fan-out de un carrito en tickets de cocina independientes.
type UseCase struct {
	txRunner  TxRunner
	publisher ports.EventPublisher
	log       *logger.Logger
	now       func() time.Time
	newID     func() string
}

// NewUseCase construye el caso de uso. publisher y log pueden ser nil.
func NewUseCase(txRunner TxRunner, publisher ports.EventPublisher, log *logger.Logger) *UseCase {
	if publisher == nil {
		publisher = ports.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		txRunner:  txRunner,
		publisher: publisher,
		log:       log.Component("order"),
		now:       time.Now,
		newID:     NewTicketID,
	}
}

// NewTicketID genera un código KT- con 8 hexadecimales en mayúscula.
func NewTicketID() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return TicketIDPrefix + strings.ToUpper(raw[:8])
}

// Place valida el carrito y crea un ticket por línea, todo o nada.
//
// Carrito vacío → ErrEmptyCart. Las líneas sin id o con cantidad fuera de
// 1..MaxLineQuantity se descartan; si no queda ninguna → ErrInvalidCart.
// Ambos casos se rechazan antes de tocar la base. Las líneas cuyo plato no existe o no tiene precio
// se omiten sin error.
func (uc *UseCase) Place(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	lines, err := sanitize(in.Items)
	if err != nil {
		return nil, err
	}

	orderID := uuid.New().String()
	createdAt := uc.now().UTC()
	var placed []*entity.KitchenTicketWithItem
	for attempt := 1; ; attempt++ {
		placed, err = uc.placeOnce(ctx, orderID, lines, createdAt)
		if err == nil {
			break
		}
		// La transacción ya se revirtió: se reintenta con códigos nuevos.
		if !errors.Is(err, domain.ErrTicketIDTaken) || attempt == maxPlaceAttempts {
			return nil, err
		}
		uc.log.Warn().Str("order_id", orderID).Int("attempt", attempt).Msg("código de ticket repetido, reintentando")
	}

	if len(placed) > 0 {
		uc.publishPlaced(ctx, orderID, placed, createdAt)
	}
	return toOrderResponse(orderID, placed), nil
}

// placeOnce ejecuta una transacción del fan-out y devuelve los tickets creados.
func (uc *UseCase) placeOnce(ctx context.Context, orderID string, lines []dto.CartLine, createdAt time.Time) ([]*entity.KitchenTicketWithItem, error) {
	var placed []*entity.KitchenTicketWithItem
	err := uc.txRunner.RunOrder(ctx, func(menuRepo repository.MenuItemRepository, ticketRepo repository.TicketRepository) error {
		ids := make([]string, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.ID)
		}
		items, err := menuRepo.FindExisting(ctx, ids)
		if err != nil {
			return err
		}

		used := make(map[string]struct{}, len(lines))
		tickets := make([]*entity.KitchenTicket, 0, len(lines))
		placed = make([]*entity.KitchenTicketWithItem, 0, len(lines))
		for _, l := range lines {
			item, ok := items[l.ID]
			if !ok || !item.Orderable() {
				continue
			}
			t := &entity.KitchenTicket{
				ID:         uc.uniqueID(used),
				OrderID:    orderID,
				LineNo:     len(tickets) + 1,
				MenuItemID: item.ID,
				Status:     ticket.StatusQueued,
				Quantity:   l.Quantity,
				CreatedAt:  createdAt,
			}
			tickets = append(tickets, t)
			placed = append(placed, &entity.KitchenTicketWithItem{KitchenTicket: *t, Item: *item})
		}
		if len(tickets) == 0 {
			return nil
		}
		return ticketRepo.CreateBatch(ctx, tickets)
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func (uc *UseCase) uniqueID(used map[string]struct{}) string {
	for {
		id := uc.newID()
		if _, dup := used[id]; !dup {
			used[id] = struct{}{}
			return id
		}
	}
}

func (uc *UseCase) publishPlaced(ctx context.Context, orderID string, placed []*entity.KitchenTicketWithItem, at time.Time) {
	ids := make([]string, 0, len(placed))
	for _, p := range placed {
		ids = append(ids, p.ID)
	}
	evt := dto.OrderPlacedEvent{OrderID: orderID, TicketIDs: ids, PlacedAt: at}
	if err := uc.publisher.PublishOrderPlaced(ctx, evt); err != nil {
		uc.log.Warn().Err(err).Str("order_id", orderID).Msg("no se pudo publicar order.placed")
	}
}

func sanitize(items []dto.CartLine) ([]dto.CartLine, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	out := make([]dto.CartLine, 0, len(items))
	for _, it := range items {
		id := strings.TrimSpace(it.ID)
		if id == "" || it.Quantity <= 0 || it.Quantity > MaxLineQuantity {
			continue
		}
		out = append(out, dto.CartLine{ID: id, Quantity: it.Quantity})
	}
	if len(out) == 0 {
		return nil, domain.ErrInvalidCart
	}
	return out, nil
}

func toOrderResponse(orderID string, placed []*entity.KitchenTicketWithItem) *dto.OrderResponse {
	tickets := make([]dto.PlacedTicket, 0, len(placed))
	for _, p := range placed {
		tickets = append(tickets, dto.PlacedTicket{
			ID:        p.ID,
			Status:    string(p.Status),
			Quantity:  p.Quantity,
			CreatedAt: p.CreatedAt,
			Item:      dto.TicketItemSummary{ID: p.Item.ID, Name: p.Item.Name},
		})
	}
	return &dto.OrderResponse{OrderID: orderID, Tickets: tickets}
}
