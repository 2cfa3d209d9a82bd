package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/menu"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// MenuHandler catálogo del menú.
type MenuHandler struct {
	uc  *menu.UseCase
	log *logger.Logger
}

// NewMenuHandler construye el handler.
func NewMenuHandler(uc *menu.UseCase, log *logger.Logger) *MenuHandler {
	return &MenuHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar menú (más recientes primero)
// @Tags         menu
// @Produce      json
// @Success      200  {object}  dto.MenuListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/menu [get]
func (h *MenuHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear plato
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MenuItemRequest  true  "name, description, photoUrl, price"
// @Success      201   {object}  dto.MenuActionResponse
// @Failure      400   {object}  dto.ActionState
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/menu [post]
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	var in dto.MenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ActionFailed("cuerpo inválido"))
	}
	item, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeActionError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MenuActionResponse{ActionState: dto.ActionOK(), Item: item})
}

// Update godoc
// @Summary      Actualizar plato
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del plato"
// @Param        body  body  dto.MenuItemRequest  true  "name, description, photoUrl, price"
// @Success      200   {object}  dto.MenuActionResponse
// @Failure      400   {object}  dto.ActionState
// @Failure      404   {object}  dto.ActionState
// @Router       /api/menu/{id} [put]
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	var in dto.MenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ActionFailed("cuerpo inválido"))
	}
	item, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeActionError(c, h.log, err)
	}
	return c.JSON(dto.MenuActionResponse{ActionState: dto.ActionOK(), Item: item})
}
