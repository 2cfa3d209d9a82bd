package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/internal/domain/ticket"
)

var _ repository.TicketRepository = (*TicketRepo)(nil)

// TicketRepo implementación de TicketRepository (usable con pool o tx).
type TicketRepo struct {
	q Querier
}

// NewTicketRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

const ticketWithItemSelect = `
	SELECT t.id, t.order_id, t.line_no, t.menu_item_id, t.status, t.quantity,
	       t.created_at, t.updated_at, t.completed_at,
	       m.id, m.name, m.description, m.photo_url, m.price, m.created_at, m.updated_at
	FROM kitchen_tickets t
	JOIN menu_items m ON m.id = t.menu_item_id`

// ticketPKConstraint nombre por defecto de la PK de kitchen_tickets.
const ticketPKConstraint = "kitchen_tickets_pkey"

const ticketOrder = ` ORDER BY t.created_at ASC, t.line_no ASC, t.order_id`

// CreateBatch inserta todos los tickets de un pedido en una sola sentencia.
func (r *TicketRepo) CreateBatch(ctx context.Context, tickets []*entity.KitchenTicket) error {
	if len(tickets) == 0 {
		return nil
	}
	n := len(tickets)
	ids := make([]string, 0, n)
	orderIDs := make([]string, 0, n)
	lineNos := make([]int32, 0, n)
	itemIDs := make([]string, 0, n)
	statuses := make([]string, 0, n)
	quantities := make([]int32, 0, n)
	createdAts := make([]time.Time, 0, n)
	for _, t := range tickets {
		ids = append(ids, t.ID)
		orderIDs = append(orderIDs, t.OrderID)
		lineNos = append(lineNos, int32(t.LineNo))
		itemIDs = append(itemIDs, t.MenuItemID)
		statuses = append(statuses, string(t.Status))
		quantities = append(quantities, int32(t.Quantity))
		createdAts = append(createdAts, t.CreatedAt)
	}
	query := `
		INSERT INTO kitchen_tickets (id, order_id, line_no, menu_item_id, status, quantity, created_at)
		SELECT * FROM unnest($1::text[], $2::text[], $3::int[], $4::text[], $5::text[], $6::int[], $7::timestamptz[])`
	if _, err := r.q.Exec(ctx, query, ids, orderIDs, lineNos, itemIDs, statuses, quantities, createdAts); err != nil {
		if violatedConstraint(err) == ticketPKConstraint {
			return fmt.Errorf("insert kitchen tickets: %w", domain.ErrTicketIDTaken)
		}
		return persistenceError("insert kitchen tickets", err)
	}
	return nil
}

// Transition aplica next con un UPDATE condicional sobre el estado actual.
// completed_at se fija solo la primera vez que el ticket entra en completed.
func (r *TicketRepo) Transition(ctx context.Context, id string, next ticket.Status, from []ticket.Status, at time.Time) (*entity.KitchenTicketWithItem, error) {
	sources := make([]string, 0, len(from))
	for _, s := range from {
		sources = append(sources, string(s))
	}
	query := `
		WITH t AS (
			UPDATE kitchen_tickets
			SET status = $2::text,
			    updated_at = $4::timestamptz,
			    completed_at = CASE WHEN $2::text = 'completed' THEN COALESCE(completed_at, $4::timestamptz) ELSE completed_at END
			WHERE id = $1 AND status = ANY($3::text[])
			RETURNING *
		)
		SELECT t.id, t.order_id, t.line_no, t.menu_item_id, t.status, t.quantity,
		       t.created_at, t.updated_at, t.completed_at,
		       m.id, m.name, m.description, m.photo_url, m.price, m.created_at, m.updated_at
		FROM t JOIN menu_items m ON m.id = t.menu_item_id`
	out, err := scanTicketWithItem(r.q.QueryRow(ctx, query, id, string(next), sources, at))
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, persistenceError("transition ticket", err)
	}

	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM kitchen_tickets WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, persistenceError("check ticket", err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return nil, domain.ErrInvalidTransition
}

// ListQueue todos los tickets con su plato, FIFO.
func (r *TicketRepo) ListQueue(ctx context.Context) ([]*entity.KitchenTicketWithItem, error) {
	return r.list(ctx, ticketWithItemSelect+ticketOrder)
}

// ListByOrder tickets de un pedido. Lista vacía si no hay.
func (r *TicketRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.KitchenTicketWithItem, error) {
	return r.list(ctx, ticketWithItemSelect+` WHERE t.order_id = $1`+ticketOrder, orderID)
}

func (r *TicketRepo) list(ctx context.Context, query string, args ...any) ([]*entity.KitchenTicketWithItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, persistenceError("list tickets", err)
	}
	defer rows.Close()
	list := make([]*entity.KitchenTicketWithItem, 0)
	for rows.Next() {
		t, err := scanTicketWithItem(rows)
		if err != nil {
			return nil, persistenceError("scan ticket", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("list tickets", err)
	}
	return list, nil
}

// scanTicketWithItem decodifica una fila; un estado desconocido en la base es un error.
func scanTicketWithItem(row pgx.Row) (*entity.KitchenTicketWithItem, error) {
	var (
		out    entity.KitchenTicketWithItem
		status string
	)
	err := row.Scan(
		&out.ID, &out.OrderID, &out.LineNo, &out.MenuItemID, &status, &out.Quantity,
		&out.CreatedAt, &out.UpdatedAt, &out.CompletedAt,
		&out.Item.ID, &out.Item.Name, &out.Item.Description, &out.Item.PhotoURL, &out.Item.Price,
		&out.Item.CreatedAt, &out.Item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	parsed, err := ticket.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("ticket %s: %w", out.ID, err)
	}
	out.Status = parsed
	return &out, nil
}
