package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// classify traduce un error de dominio a status HTTP, código y mensaje visible.
// Los errores internos nunca exponen su detalle.
func classify(err error) (int, string, string) {
	var originErr *domain.OriginError
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return fiber.StatusBadRequest, "EMPTY_CART", "el carrito está vacío"
	case errors.Is(err, domain.ErrInvalidCart):
		return fiber.StatusBadRequest, "INVALID_CART", "los items del carrito son inválidos"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", "entrada inválida"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusBadRequest, "EMAIL_EXISTS", "el email ya está registrado"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"
	case errors.As(err, &originErr):
		return fiber.StatusForbidden, "ORIGIN_REJECTED", originErr.Error()
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, "INVALID_TRANSITION", "transición de estado no permitida"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT", "conflicto con el estado actual"
	case errors.Is(err, domain.ErrRateLimited):
		return fiber.StatusTooManyRequests, "RATE_LIMITED", "demasiados intentos, intente más tarde"
	case errors.Is(err, domain.ErrMisconfigured):
		return fiber.StatusInternalServerError, "MISCONFIGURED", "servicio no configurado"
	default:
		return fiber.StatusInternalServerError, "INTERNAL", "error interno, intente más tarde"
	}
}

func logIfServerError(c *fiber.Ctx, log *logger.Logger, status int, err error) {
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error atendiendo petición")
	}
}

// writeError responde con dto.ErrorResponse.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, code, msg := classify(err)
	logIfServerError(c, log, status, err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// writeActionError responde con la forma {error, success:false} de los formularios.
func writeActionError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, _, msg := classify(err)
	logIfServerError(c, log, status, err)
	return c.Status(status).JSON(dto.ActionFailed(msg))
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
