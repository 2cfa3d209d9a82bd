package repository

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// MenuItemRepository define el puerto de persistencia para MenuItem (DIP).
type MenuItemRepository interface {
	Create(ctx context.Context, item *entity.MenuItem) error
	// Update devuelve domain.ErrNotFound si el id no existe.
	Update(ctx context.Context, item *entity.MenuItem) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.MenuItem, error)
	// ListNewestFirst devuelve todos los platos ordenados por creación descendente.
	ListNewestFirst(ctx context.Context) ([]*entity.MenuItem, error)
	// FindExisting devuelve los platos existentes entre ids, indexados por id.
	// Dentro de una transacción bloquea las filas en modo compartido.
	FindExisting(ctx context.Context, ids []string) (map[string]*entity.MenuItem, error)
}
