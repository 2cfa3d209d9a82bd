package repository

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer (DIP).
type CustomerRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya existe.
	Create(ctx context.Context, customer *entity.Customer) error
	// GetByID y GetByEmail devuelven (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// El email debe llegar ya normalizado (case-folded).
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
	// UpdateProfile actualiza nombre, teléfono y plato favorito. ErrNotFound si no existe.
	UpdateProfile(ctx context.Context, customer *entity.Customer) error
}
