package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/order"
	appticket "github.com/jhoicas/restaurante-api/internal/application/ticket"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// OrderHandler creación y seguimiento de pedidos.
type OrderHandler struct {
	orders  *order.UseCase
	tickets *appticket.UseCase
	log     *logger.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orders *order.UseCase, tickets *appticket.UseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, tickets: tickets, log: log}
}

// Create godoc
// @Summary      Crear pedido (un ticket de cocina por línea)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "items: [{id, quantity}]"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.orders.Place(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Status godoc
// @Summary      Estado de un pedido
// @Tags         orders
// @Produce      json
// @Param        orderId  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderStatusResponse
// @Router       /api/orders/{orderId} [get]
func (h *OrderHandler) Status(c *fiber.Ctx) error {
	out, err := h.tickets.ByOrder(c.UserContext(), c.Params("orderId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Slips godoc
// @Summary      Comandas imprimibles del pedido (PDF)
// @Tags         orders
// @Produce      application/pdf
// @Param        orderId  path  string  true  "ID del pedido"
// @Success      200  {file}  binary
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{orderId}/slips.pdf [get]
func (h *OrderHandler) Slips(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	pdf, err := h.tickets.OrderSlips(c.UserContext(), orderID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=\"comandas-%s.pdf\"", orderID))
	return c.Send(pdf)
}
