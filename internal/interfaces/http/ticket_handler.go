package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	appticket "github.com/jhoicas/restaurante-api/internal/application/ticket"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// TicketHandler cola de cocina y cambios de estado.
type TicketHandler struct {
	uc  *appticket.UseCase
	log *logger.Logger
}

// NewTicketHandler construye el handler.
func NewTicketHandler(uc *appticket.UseCase, log *logger.Logger) *TicketHandler {
	return &TicketHandler{uc: uc, log: log}
}

// Queue godoc
// @Summary      Cola de cocina (FIFO)
// @Tags         tickets
// @Produce      json
// @Success      200  {object}  dto.QueueResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/tickets [get]
func (h *TicketHandler) Queue(c *fiber.Ctx) error {
	out, err := h.uc.Queue(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Avanzar estado de un ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del ticket"
// @Param        body  body  dto.UpdateTicketStatusRequest  true  "nextStatus"
// @Success      200   {object}  dto.TicketActionResponse
// @Failure      400   {object}  dto.ActionState
// @Failure      404   {object}  dto.ActionState
// @Failure      409   {object}  dto.ActionState
// @Router       /api/tickets/{id}/status [post]
func (h *TicketHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateTicketStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ActionFailed("cuerpo inválido"))
	}
	t, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.NextStatus)
	if err != nil {
		return writeActionError(c, h.log, err)
	}
	return c.JSON(dto.TicketActionResponse{ActionState: dto.ActionOK(), Ticket: t})
}
