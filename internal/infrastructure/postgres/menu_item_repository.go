package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ repository.MenuItemRepository = (*MenuItemRepo)(nil)

// MenuItemRepo implementación de MenuItemRepository (usable con pool o tx).
type MenuItemRepo struct {
	q Querier
}

// NewMenuItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMenuItemRepository(q Querier) *MenuItemRepo {
	return &MenuItemRepo{q: q}
}

const menuItemColumns = `id, name, description, photo_url, price, created_at, updated_at`

// Create persiste un plato nuevo.
func (r *MenuItemRepo) Create(ctx context.Context, item *entity.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, name, description, photo_url, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.PhotoURL, item.Price, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return persistenceError("insert menu item", err)
	}
	return nil
}

// Update reemplaza los campos editables. ErrNotFound si no existe.
func (r *MenuItemRepo) Update(ctx context.Context, item *entity.MenuItem) error {
	query := `
		UPDATE menu_items SET name = $2, description = $3, photo_url = $4, price = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.PhotoURL, item.Price, item.UpdatedAt,
	)
	if err != nil {
		return persistenceError("update menu item", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un plato por ID.
func (r *MenuItemRepo) GetByID(ctx context.Context, id string) (*entity.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1`
	item, err := scanMenuItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistenceError("get menu item", err)
	}
	return item, nil
}

// ListNewestFirst lista todo el menú, los más recientes primero.
func (r *MenuItemRepo) ListNewestFirst(ctx context.Context) ([]*entity.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items ORDER BY created_at DESC, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, persistenceError("list menu items", err)
	}
	defer rows.Close()
	list := make([]*entity.MenuItem, 0)
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, persistenceError("scan menu item", err)
		}
		list = append(list, item)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("list menu items", err)
	}
	return list, nil
}

// FindExisting devuelve los platos existentes entre ids. Dentro de una tx los
// bloquea FOR SHARE para que no cambien mientras se crean los tickets.
func (r *MenuItemRepo) FindExisting(ctx context.Context, ids []string) (map[string]*entity.MenuItem, error) {
	out := make(map[string]*entity.MenuItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = ANY($1) FOR SHARE`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, persistenceError("find menu items", err)
	}
	defer rows.Close()
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, persistenceError("scan menu item", err)
		}
		out[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("find menu items", err)
	}
	return out, nil
}

func scanMenuItem(row pgx.Row) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &m.PhotoURL, &m.Price, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
