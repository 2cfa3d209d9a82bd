package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItemRequest entrada para crear o actualizar un plato.
// Price es obligatorio en este contrato aunque la entidad lo admite nulo.
type MenuItemRequest struct {
	Name        string           `json:"name" form:"name"`
	Description string           `json:"description" form:"description"`
	PhotoURL    string           `json:"photoUrl" form:"photoUrl"`
	Price       *decimal.Decimal `json:"price" form:"price"`
}

// MenuItemResponse salida de un plato.
type MenuItemResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	PhotoURL    *string          `json:"photoUrl"`
	Price       *decimal.Decimal `json:"price"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   *time.Time       `json:"updatedAt,omitempty"`
}

// MenuListResponse listado del menú, más recientes primero.
type MenuListResponse struct {
	Items []MenuItemResponse `json:"items"`
}

// MenuActionResponse resultado de crear/actualizar con la forma {error, success}.
type MenuActionResponse struct {
	ActionState
	Item *MenuItemResponse `json:"item,omitempty"`
}
