package menu

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// UseCase catálogo del menú. Las escrituras las autoriza la capa HTTP (solo gerencia).
type UseCase struct {
	repo repository.MenuItemRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.MenuItemRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// Create publica un plato nuevo.
func (uc *UseCase) Create(ctx context.Context, in dto.MenuItemRequest) (*dto.MenuItemResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	item := &entity.MenuItem{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		PhotoURL:    optional(in.PhotoURL),
		Price:       in.Price,
		CreatedAt:   uc.now().UTC(),
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return ToResponse(item), nil
}

// Update reemplaza los campos editables. ErrNotFound si el plato no existe.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.MenuItemRequest) (*dto.MenuItemResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	now := uc.now().UTC()
	item.Name = strings.TrimSpace(in.Name)
	item.Description = strings.TrimSpace(in.Description)
	item.PhotoURL = optional(in.PhotoURL)
	item.Price = in.Price
	item.UpdatedAt = &now
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return ToResponse(item), nil
}

// List devuelve el menú completo, los más recientes primero.
func (uc *UseCase) List(ctx context.Context) (*dto.MenuListResponse, error) {
	items, err := uc.repo.ListNewestFirst(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MenuItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *ToResponse(it))
	}
	return &dto.MenuListResponse{Items: out}, nil
}

// El precio es obligatorio al crear/editar aunque la entidad lo admita nulo.
func validate(in dto.MenuItemRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ErrInvalidInput
	}
	if in.Price == nil || in.Price.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ToResponse convierte la entidad en su vista pública.
func ToResponse(m *entity.MenuItem) *dto.MenuItemResponse {
	if m == nil {
		return nil
	}
	return &dto.MenuItemResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		PhotoURL:    m.PhotoURL,
		Price:       m.Price,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
