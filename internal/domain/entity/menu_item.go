package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem plato publicable del menú. Solo gerencia lo modifica; no se elimina.
type MenuItem struct {
	ID          string
	Name        string
	Description string
	PhotoURL    *string
	Price       *decimal.Decimal // nil = aún no se puede pedir
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Orderable indica si el plato tiene precio asignado.
func (m *MenuItem) Orderable() bool {
	return m != nil && m.Price != nil
}
